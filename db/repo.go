package db

import (
	"Gin_postgres_redis_companies/models"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

type txKey struct{}

// conn 返回当前上下文里的事务（若有），否则返回普通连接
func (r *Repo) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return r.DB.WithContext(ctx)
}

// Transaction 在一个事务里执行 fn；fn 收到的 ctx 携带事务，
// 经由该 ctx 调用的 Repo 方法都落在同一事务中。嵌套调用走 SAVEPOINT。
func (r *Repo) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Users

func (r *Repo) TouchUserSeen(ctx context.Context, userID string) error {
	return r.conn(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// 按 ID 查
func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.conn(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.conn(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindOrCreateUserByEmail 找不到就用邮箱建一个新用户（名字取 @ 前的部分）
func (r *Repo) FindOrCreateUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.FindUserByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	name, _, _ := strings.Cut(email, "@")
	u = &models.User{ID: uuid.NewString(), Name: name, Email: email}
	if err := r.conn(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser 直接落库；ID 为空时自动生成
func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return r.conn(ctx).Create(u).Error
}

// SwitchCurrentCompany 把用户的当前公司切换到 c；调用方负责确认用户属于该公司
func (r *Repo) SwitchCurrentCompany(ctx context.Context, u *models.User, c *models.Company) error {
	if err := r.conn(ctx).Model(&models.User{}).
		Where("id = ?", u.ID).
		Update("current_company_id", c.ID).Error; err != nil {
		return err
	}
	id := c.ID
	u.CurrentCompanyID = &id
	return nil
}
