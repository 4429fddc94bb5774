package controllers

import (
	"net/http"

	"Gin_postgres_redis_companies/app"
	"Gin_postgres_redis_companies/policy"

	"github.com/gin-gonic/gin"
)

type CompanyController struct{ *Srv }

func NewCompanyController(s *Srv) *CompanyController { return &CompanyController{Srv: s} }

// GET /api/companies/:id
func (cc *CompanyController) Show(c *gin.Context) {
	company, user, ok := cc.loadCompany(c, policy.ActionView)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	owner, err := cc.Repo.FindOwner(ctx, company)
	if err != nil {
		_ = c.Error(err)
		return
	}
	users, err := cc.Repo.AllUsers(ctx, company)
	if err != nil {
		_ = c.Error(err)
		return
	}
	perms, err := cc.Perms.CompanyPermissions(ctx, company, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, app.H{
		"company":     company,
		"owner":       owner,
		"users":       users,
		"permissions": perms,
		"roles":       cc.Roles.Roles(),
	})
}

// GET /api/companies/:id/users
func (cc *CompanyController) Members(c *gin.Context) {
	company, _, ok := cc.loadCompany(c, policy.ActionView)
	if !ok {
		return
	}
	members, err := cc.Repo.ListMembers(c.Request.Context(), company)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, app.H{"users": members})
}

type invitationRow struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	AcceptURL string `json:"acceptUrl"`
}

// GET /api/companies/:id/invitations
func (cc *CompanyController) Invitations(c *gin.Context) {
	company, _, ok := cc.loadCompany(c, policy.ActionAddEmployee)
	if !ok {
		return
	}
	invs, err := cc.Repo.ListCompanyInvitations(c.Request.Context(), company)
	if err != nil {
		_ = c.Error(err)
		return
	}
	rows := make([]invitationRow, 0, len(invs))
	for _, inv := range invs {
		link, err := cc.Links.AcceptURL(inv.ID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		rows = append(rows, invitationRow{ID: inv.ID, Email: inv.Email, Role: inv.Role, AcceptURL: link})
	}
	c.JSON(http.StatusOK, app.H{"invitations": rows})
}

// PUT /api/companies/:id/users/:userId  {"role": "editor"}
func (cc *CompanyController) UpdateEmployee(c *gin.Context) {
	var in struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	company, user, ok := cc.loadCompany(c, policy.ActionView)
	if !ok {
		return
	}
	target, err := cc.Repo.FindUserByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := cc.RoleUpdater.Update(c.Request.Context(), user, company, target, in.Role); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// DELETE /api/companies/:id/users/:userId
func (cc *CompanyController) RemoveEmployee(c *gin.Context) {
	company, user, ok := cc.loadCompany(c, policy.ActionView)
	if !ok {
		return
	}
	target, err := cc.Repo.FindUserByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := cc.Remover.Remove(c.Request.Context(), user, company, target); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true, "left": user.ID == target.ID})
}

// DELETE /api/companies/:id
func (cc *CompanyController) Destroy(c *gin.Context) {
	company, user, ok := cc.loadCompany(c, policy.ActionView)
	if !ok {
		return
	}
	if err := cc.Deleter.Delete(c.Request.Context(), user, company); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
