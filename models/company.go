package models

import "time"

const EmployeeshipTable = "company_user"

// Company 是一个租户/团队；UserID 为所有者
type Company struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	UserID          string    `gorm:"size:36;index;not null" json:"userId"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	PersonalCompany bool      `gorm:"not null;default:false" json:"personalCompany"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Company) TableName() string { return "companies" }

// Employeeship 是 companies <-> users 的中间表，角色只存在于这里
type Employeeship struct {
	CompanyID string    `gorm:"primaryKey;size:36" json:"companyId"`
	UserID    string    `gorm:"primaryKey;size:36;index" json:"userId"`
	Role      string    `gorm:"size:64" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Employeeship) TableName() string { return EmployeeshipTable }

// CompanyUser 是带中间表字段的成员视图（只读，由 JOIN 扫描得到）
type CompanyUser struct {
	User
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}
