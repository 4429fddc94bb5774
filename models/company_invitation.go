package models

import "time"

// CompanyInvitation 是一次性的入职邀请：接受或取消后直接删除，不做原地更新
type CompanyInvitation struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CompanyID string    `gorm:"size:36;not null;uniqueIndex:idx_company_invitation_email" json:"companyId"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_company_invitation_email" json:"email"`
	Role      string    `gorm:"size:64" json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CompanyInvitation) TableName() string { return "company_invitations" }
