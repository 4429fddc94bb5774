package policy

import (
	"context"
	"errors"
	"fmt"
	"os"

	"Gin_postgres_redis_companies/models"

	"github.com/open-policy-agent/opa/v1/rego"
)

// 公司上的能力（ability）
const (
	ActionView                      = "view"
	ActionUpdate                    = "update"
	ActionAddEmployee               = "addCompanyEmployee"
	ActionUpdateEmployeePermissions = "updateCompanyEmployeePermissions"
	ActionRemoveEmployee            = "removeCompanyEmployee"
	ActionDelete                    = "delete"
)

// ErrForbidden 表示调用者没有所需能力（HTTP 403）
var ErrForbidden = errors.New("this action is unauthorized")

const allowQuery = "data.companies.authz.allow"

// DefaultPolicy：成员可以查看，其余能力只属于所有者
const DefaultPolicy = `package companies.authz

default allow := false

owner if {
	input.user.id == input.company.owner_id
}

member if {
	input.membership.role
}

allow if {
	owner
}

allow if {
	input.action == "view"
	member
}
`

// Gate 判断 user 能否对 company 执行 action
type Gate interface {
	Authorize(ctx context.Context, u *models.User, action string, c *models.Company) (bool, error)
}

// Authorize 把拒绝转换成 ErrForbidden
func Authorize(ctx context.Context, g Gate, u *models.User, action string, c *models.Company) error {
	ok, err := g.Authorize(ctx, u, action, c)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// RegoGate 用 OPA 评估 Rego 策略，输入为 {action, user, company, membership}
type RegoGate struct {
	query rego.PreparedEvalQuery
	perms *Permissions
}

func NewRegoGate(ctx context.Context, perms *Permissions, module string) (*RegoGate, error) {
	if module == "" {
		module = DefaultPolicy
	}
	q, err := rego.New(
		rego.Query(allowQuery),
		rego.Module("companies.rego", module),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile policy: %w", err)
	}
	return &RegoGate{query: q, perms: perms}, nil
}

// LoadRegoGate 从文件加载策略；path 为空时用 DefaultPolicy
func LoadRegoGate(ctx context.Context, perms *Permissions, path string) (*RegoGate, error) {
	if path == "" {
		return NewRegoGate(ctx, perms, "")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return NewRegoGate(ctx, perms, string(b))
}

func (g *RegoGate) Authorize(ctx context.Context, u *models.User, action string, c *models.Company) (bool, error) {
	if u == nil || c == nil {
		return false, nil
	}
	input, err := g.input(ctx, u, action, c)
	if err != nil {
		return false, err
	}
	rs, err := g.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("eval policy: %w", err)
	}
	return rs.Allowed(), nil
}

func (g *RegoGate) input(ctx context.Context, u *models.User, action string, c *models.Company) (map[string]any, error) {
	input := map[string]any{
		"action": action,
		"user": map[string]any{
			"id":    u.ID,
			"email": u.Email,
		},
		"company": map[string]any{
			"id":               c.ID,
			"owner_id":         c.UserID,
			"personal_company": c.PersonalCompany,
		},
	}
	role, ok, err := g.perms.Members.MemberRole(ctx, c.ID, u.ID)
	if err != nil {
		return nil, err
	}
	if ok {
		perms := make([]any, 0)
		for _, p := range g.perms.Roles.Permissions(role) {
			perms = append(perms, p)
		}
		input["membership"] = map[string]any{
			"role":        role,
			"permissions": perms,
		}
	}
	return input, nil
}
