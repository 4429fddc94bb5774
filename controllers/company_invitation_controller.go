package controllers

import (
	"net/http"

	"Gin_postgres_redis_companies/app"
	"Gin_postgres_redis_companies/session"

	"github.com/gin-gonic/gin"
)

type CompanyInvitationController struct{ *Srv }

func NewCompanyInvitationController(s *Srv) *CompanyInvitationController {
	return &CompanyInvitationController{Srv: s}
}

// GET|POST /company-invitations/:invitation
func (ic *CompanyInvitationController) Accept(c *gin.Context) {
	n, err := ic.Invitations.Accept(c.Request.Context(), c.Param("invitation"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if sid := app.SessionID(c); sid != "" {
		_ = ic.Flash.Push(c.Request.Context(), sid, session.Banner{Style: "success", Message: n.Message})
	}
	c.Redirect(http.StatusFound, ic.Cfg.HomePath)
}

// DELETE /company-invitations/:invitation
func (ic *CompanyInvitationController) Destroy(c *gin.Context) {
	if err := ic.Invitations.Cancel(c.Request.Context(), app.CurrentUser(c), c.Param("invitation")); err != nil {
		_ = c.Error(err)
		return
	}

	back := c.Request.Referer()
	if back == "" {
		back = ic.Cfg.HomePath
	}
	c.Redirect(http.StatusSeeOther, back)
}
