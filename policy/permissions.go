package policy

import (
	"context"
	"slices"
	"strings"

	"Gin_postgres_redis_companies/models"
)

// MembershipLookup 查用户在公司里的角色；ok=false 表示不是显式成员
type MembershipLookup interface {
	MemberRole(ctx context.Context, companyID, userID string) (role string, ok bool, err error)
}

type Permissions struct {
	Members MembershipLookup
	Roles   *Catalog
}

func NewPermissions(members MembershipLookup, roles *Catalog) *Permissions {
	return &Permissions{Members: members, Roles: roles}
}

// CompanyPermissions 返回用户在公司里的全部权限；所有者拥有 "*"
func (p *Permissions) CompanyPermissions(ctx context.Context, c *models.Company, u *models.User) ([]string, error) {
	if u.OwnsCompany(c) {
		return []string{"*"}, nil
	}
	role, ok, err := p.Members.MemberRole(ctx, c.ID, u.ID)
	if err != nil || !ok {
		return nil, err
	}
	return p.Roles.Permissions(role), nil
}

// UserHasPermission：所有者恒为真；非成员恒为假；否则看角色权限（支持 "*"、"*:create"、"*:update"）
func (p *Permissions) UserHasPermission(ctx context.Context, c *models.Company, u *models.User, permission string) (bool, error) {
	if u.OwnsCompany(c) {
		return true, nil
	}
	role, ok, err := p.Members.MemberRole(ctx, c.ID, u.ID)
	if err != nil || !ok {
		return false, err
	}
	return Grants(p.Roles.Permissions(role), permission), nil
}

func Grants(perms []string, permission string) bool {
	switch {
	case slices.Contains(perms, permission), slices.Contains(perms, "*"):
		return true
	case strings.HasSuffix(permission, ":create") && slices.Contains(perms, "*:create"):
		return true
	case strings.HasSuffix(permission, ":update") && slices.Contains(perms, "*:update"):
		return true
	}
	return false
}
