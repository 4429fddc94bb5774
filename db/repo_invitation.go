package db

import (
	"context"

	"Gin_postgres_redis_companies/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateInvitation 只供种子数据/测试使用，真正的邀请发起流程不在本服务
func (r *Repo) CreateInvitation(ctx context.Context, c *models.Company, email, role string) (*models.CompanyInvitation, error) {
	inv := &models.CompanyInvitation{ID: uuid.NewString(), CompanyID: c.ID, Email: email, Role: role}
	return inv, r.conn(ctx).Create(inv).Error
}

func (r *Repo) FindInvitationByID(ctx context.Context, id string) (*models.CompanyInvitation, error) {
	var inv models.CompanyInvitation
	if err := r.conn(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindInvitationForUpdate 锁住邀请行；并发 accept 时后到者等待，然后拿到 ErrRecordNotFound
func (r *Repo) FindInvitationForUpdate(ctx context.Context, id string) (*models.CompanyInvitation, error) {
	var inv models.CompanyInvitation
	q := r.conn(ctx)
	// sqlite 没有行锁，单连接本身已经串行
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repo) ListCompanyInvitations(ctx context.Context, c *models.Company) ([]models.CompanyInvitation, error) {
	var invs []models.CompanyInvitation
	err := r.conn(ctx).
		Where("company_id = ?", c.ID).
		Order("created_at ASC").
		Find(&invs).Error
	return invs, err
}

func (r *Repo) DeleteInvitation(ctx context.Context, inv *models.CompanyInvitation) error {
	res := r.conn(ctx).Delete(&models.CompanyInvitation{}, "id = ?", inv.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) CountCompanyInvitations(ctx context.Context, companyID string) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&models.CompanyInvitation{}).
		Where("company_id = ?", companyID).
		Count(&n).Error
	return n, err
}
