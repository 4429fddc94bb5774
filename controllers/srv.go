// controllers/srv.go
package controllers

import (
	"context"

	"Gin_postgres_redis_companies/app"
	"Gin_postgres_redis_companies/db"
	"Gin_postgres_redis_companies/invitations"
	"Gin_postgres_redis_companies/links"
	"Gin_postgres_redis_companies/membership"
	"Gin_postgres_redis_companies/models"
	"Gin_postgres_redis_companies/policy"
	"Gin_postgres_redis_companies/session"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo    *db.Repo
	AppSess *session.AppSessionStore
	Flash   *session.FlashStore
	Links   *links.Signer
	Cfg     app.Config

	Roles *policy.Catalog
	Perms *policy.Permissions
	Gate  policy.Gate

	Invitations *invitations.Handler
	Adder       *membership.Adder
	Remover     *membership.Remover
	RoleUpdater *membership.RoleUpdater
	Deleter     *membership.Deleter
}

func GetSrv(a *app.App) (*Srv, error) {
	repo := db.NewRepo(a.DB)

	roles, err := policy.LoadCatalog(a.Config.RolesFile)
	if err != nil {
		return nil, err
	}
	perms := policy.NewPermissions(repo, roles)
	gate, err := policy.LoadRegoGate(context.Background(), perms, a.Config.PolicyFile)
	if err != nil {
		return nil, err
	}

	adder := membership.NewAdder(repo, gate, roles)
	return &Srv{
		Repo:    repo,
		AppSess: a.AppSessions(),
		Flash:   a.Flash(),
		Links:   links.NewSigner(a.Config.InviteKey, a.Config.WebOrigin, a.Config.InviteLinkTTL),
		Cfg:     a.Config,

		Roles: roles,
		Perms: perms,
		Gate:  gate,

		Invitations: invitations.NewHandler(repo, adder, gate),
		Adder:       adder,
		Remover:     membership.NewRemover(repo, gate),
		RoleUpdater: membership.NewRoleUpdater(repo, gate, roles),
		Deleter:     membership.NewDeleter(repo, gate),
	}, nil
}

// --- helpers ---

// loadCompany 读取 :id 对应的公司并检查 action；失败时已写入 c.Error
func (s *Srv) loadCompany(c *gin.Context, action string) (*models.Company, *models.User, bool) {
	ctx := c.Request.Context()
	user := app.CurrentUser(c)
	company, err := s.Repo.FindCompanyByID(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return nil, nil, false
	}
	if err := policy.Authorize(ctx, s.Gate, user, action, company); err != nil {
		_ = c.Error(err)
		return nil, nil, false
	}
	return company, user, true
}
