package db

import (
	"Gin_postgres_redis_companies/models"
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options 描述数据库连接；Driver 为 "postgres"（默认）或 "sqlite"
type Options struct {
	Driver   string
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	Path     string // sqlite 文件路径，":memory:" 为内存库
	Silent   bool
}

func ConnectDB(opts Options) *gorm.DB {
	conn, err := Open(opts)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := Migrate(conn); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return conn
}

func Open(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if opts.Silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	switch opts.Driver {
	case "sqlite":
		path := opts.Path
		if path == "" {
			path = "companies.db"
		}
		conn, err := gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, err
		}
		// SQLite 单写者：一个连接足够，内存库也只在这个连接里存在
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return conn, nil
	case "", "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			opts.Host, opts.User, opts.Password, opts.Name, opts.Port,
		)
		return gorm.Open(postgres.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", opts.Driver)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Employeeship{},
		&models.CompanyInvitation{},
	)
}
