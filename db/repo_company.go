package db

import (
	"Gin_postgres_redis_companies/models"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Companies

func (r *Repo) CreateCompany(ctx context.Context, owner *models.User, name string, personal bool) (*models.Company, error) {
	c := &models.Company{
		ID:              uuid.NewString(),
		UserID:          owner.ID,
		Name:            name,
		PersonalCompany: personal,
	}
	if err := r.conn(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Repo) FindCompanyByID(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	if err := r.conn(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) CountOwnedCompanies(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&models.Company{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

// FindOwner 返回公司的所有者
func (r *Repo) FindOwner(ctx context.Context, c *models.Company) (*models.User, error) {
	return r.FindUserByID(ctx, c.UserID)
}

// ListMembers 返回显式成员（不含仅作为所有者的用户），每条带 role
func (r *Repo) ListMembers(ctx context.Context, c *models.Company) ([]models.CompanyUser, error) {
	var rows []models.CompanyUser
	err := r.conn(ctx).
		Table("users").
		Select("users.*, cu.role AS role, cu.created_at AS joined_at").
		Joins("JOIN "+models.EmployeeshipTable+" cu ON cu.user_id = users.id").
		Where("cu.company_id = ?", c.ID).
		Order("cu.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AllUsers = 成员 ∪ 所有者；所有者恰好出现一次
func (r *Repo) AllUsers(ctx context.Context, c *models.Company) ([]models.User, error) {
	members, err := r.ListMembers(ctx, c)
	if err != nil {
		return nil, err
	}
	owner, err := r.FindOwner(ctx, c)
	if err != nil {
		return nil, err
	}

	out := make([]models.User, 0, len(members)+1)
	for _, m := range members {
		if m.ID == owner.ID {
			continue
		}
		out = append(out, m.User)
	}
	return append(out, *owner), nil
}

// HasUser：显式成员或所有者
func (r *Repo) HasUser(ctx context.Context, c *models.Company, u *models.User) (bool, error) {
	if u.OwnsCompany(c) {
		return true, nil
	}
	_, ok, err := r.MemberRole(ctx, c.ID, u.ID)
	return ok, err
}

// HasUserWithEmail 精确（区分大小写）匹配邮箱
func (r *Repo) HasUserWithEmail(ctx context.Context, c *models.Company, email string) (bool, error) {
	users, err := r.AllUsers(ctx, c)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// MemberRole 查中间表里的角色；ok=false 表示不是显式成员
func (r *Repo) MemberRole(ctx context.Context, companyID, userID string) (role string, ok bool, err error) {
	var e models.Employeeship
	err = r.conn(ctx).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Role, true, nil
}

// Membership

func (r *Repo) Attach(ctx context.Context, c *models.Company, u *models.User, role string) error {
	return r.conn(ctx).Create(&models.Employeeship{
		CompanyID: c.ID,
		UserID:    u.ID,
		Role:      role,
	}).Error
}

// Detach 幂等：用户不在公司里也不报错
func (r *Repo) Detach(ctx context.Context, c *models.Company, u *models.User) error {
	return r.conn(ctx).
		Where("company_id = ? AND user_id = ?", c.ID, u.ID).
		Delete(&models.Employeeship{}).Error
}

func (r *Repo) UpdateRole(ctx context.Context, c *models.Company, u *models.User, role string) error {
	res := r.conn(ctx).Model(&models.Employeeship{}).
		Where("company_id = ? AND user_id = ?", c.ID, u.ID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveUser：若用户当前公司就是 c 则清空，然后解除成员关系（同一事务）
func (r *Repo) RemoveUser(ctx context.Context, c *models.Company, u *models.User) error {
	err := r.Transaction(ctx, func(ctx context.Context) error {
		if err := r.conn(ctx).Model(&models.User{}).
			Where("id = ? AND current_company_id = ?", u.ID, c.ID).
			Update("current_company_id", nil).Error; err != nil {
			return err
		}
		return r.Detach(ctx, c, u)
	})
	if err != nil {
		return err
	}
	if u.IsCurrentCompany(c) {
		u.CurrentCompanyID = nil
	}
	return nil
}

// PurgeCompany 删除公司及其所有成员关系：
// 清空所有者/成员指向 c 的 current_company_id → 解除全部成员 → 删除待处理邀请 → 删除公司。
// 全部在一个事务里，要么全成功要么全回滚。
func (r *Repo) PurgeCompany(ctx context.Context, c *models.Company) error {
	return r.Transaction(ctx, func(ctx context.Context) error {
		// 1) 所有者
		if err := r.conn(ctx).Model(&models.User{}).
			Where("id = ? AND current_company_id = ?", c.UserID, c.ID).
			Update("current_company_id", nil).Error; err != nil {
			return err
		}
		// 2) 成员
		members := r.conn(ctx).Model(&models.Employeeship{}).
			Select("user_id").
			Where("company_id = ?", c.ID)
		if err := r.conn(ctx).Model(&models.User{}).
			Where("current_company_id = ? AND id IN (?)", c.ID, members).
			Update("current_company_id", nil).Error; err != nil {
			return err
		}
		// 3) 中间表
		if err := r.conn(ctx).
			Where("company_id = ?", c.ID).
			Delete(&models.Employeeship{}).Error; err != nil {
			return err
		}
		// 4) 邀请
		if err := r.conn(ctx).
			Where("company_id = ?", c.ID).
			Delete(&models.CompanyInvitation{}).Error; err != nil {
			return err
		}
		// 5) 公司本身
		res := r.conn(ctx).Delete(&models.Company{}, "id = ?", c.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
