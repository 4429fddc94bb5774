package models

import (
	"time"
)

// User 是公司成员的账号记录；CurrentCompanyID 指向当前会话里“激活”的公司
type User struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"size:255;not null;default:''" json:"name"`
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	CurrentCompanyID *string `gorm:"size:36;index" json:"currentCompanyId,omitempty"`

	LastSeenAt *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// OwnsCompany 判断该用户是否为公司的所有者
func (u *User) OwnsCompany(c *Company) bool {
	if u == nil || c == nil {
		return false
	}
	return u.ID == c.UserID
}

// IsCurrentCompany 判断 c 是否为该用户当前激活的公司
func (u *User) IsCurrentCompany(c *Company) bool {
	return u != nil && c != nil && u.CurrentCompanyID != nil && *u.CurrentCompanyID == c.ID
}
