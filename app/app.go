package app

import (
	"Gin_postgres_redis_companies/db"
	"Gin_postgres_redis_companies/session"
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	appSess *session.AppSessionStore
	flash   *session.FlashStore
}

// Config 从环境变量读取
type Config struct {
	DB             db.Options
	RedisAddr      string
	RedisPwd       string
	WebOrigin      string
	HomePath       string
	SessionTTL     time.Duration
	FlashTTL       time.Duration
	RolesFile      string
	PolicyFile     string
	InviteKey      string
	InviteLinkTTL  time.Duration
	BootstrapEmail string
	Port           string
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }
func (a *App) Flash() *session.FlashStore            { return a.flash }

func MustNew() *App {
	cfg := LoadConfig()

	// --- DB: Postgres / SQLite ---
	dbConn := db.ConnectDB(cfg.DB)

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	return New(cfg, dbConn, rdb)
}

// New 组装 App；测试里直接传入 SQLite + miniredis
func New(cfg Config, dbConn *gorm.DB, rdb *redis.Client) *App {
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	r.Use(RenderErrors())
	return &App{
		Router: r, DB: dbConn, RDB: rdb, Config: cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
		flash:   session.NewFlashStore(rdb, cfg.FlashTTL),
	}
}

func (a *App) Close() { _ = a.RDB.Close() }

func LoadConfig() Config {
	get := func(k, def string) string {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			return def
		}
		return v
	}
	hours := func(k string, def int) time.Duration {
		n, err := strconv.Atoi(get(k, ""))
		if err != nil || n <= 0 {
			n = def
		}
		return time.Duration(n) * time.Hour
	}
	return Config{
		DB: db.Options{
			Driver:   get("DB_DRIVER", "postgres"),
			Host:     get("DB_HOST", "127.0.0.1"),
			User:     get("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     get("DB_NAME", "companies"),
			Port:     get("DB_PORT", "5432"),
			Path:     get("DB_PATH", "companies.db"),
		},
		RedisAddr:      get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:       os.Getenv("REDIS_PASSWORD"),
		WebOrigin:      get("WEB_ORIGIN", "http://localhost:3001"),
		HomePath:       get("HOME_PATH", "/dashboard"),
		SessionTTL:     hours("SESSION_TTL_HOURS", 24),
		FlashTTL:       5 * time.Minute,
		RolesFile:      os.Getenv("ROLES_FILE"),
		PolicyFile:     os.Getenv("POLICY_FILE"),
		InviteKey:      os.Getenv("INVITE_SIGNING_KEY"),
		InviteLinkTTL:  hours("INVITE_LINK_TTL_HOURS", 72),
		BootstrapEmail: strings.ToLower(os.Getenv("BOOTSTRAP_EMAIL")),
		Port:           get("PORT", "3001"),
	}
}
