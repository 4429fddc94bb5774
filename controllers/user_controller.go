package controllers

import (
	"net/http"

	"Gin_postgres_redis_companies/app"

	"github.com/gin-gonic/gin"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

// GET /api/me
func (uc *UserController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{"user": app.CurrentUser(c)})
}

// PUT /api/current-company  {"companyId": "..."}
func (uc *UserController) SwitchCompany(c *gin.Context) {
	var in struct {
		CompanyID string `json:"companyId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	user := app.CurrentUser(c)

	company, err := uc.Repo.FindCompanyByID(ctx, in.CompanyID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok, err := uc.Repo.HasUser(ctx, company, user)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, app.H{"error": "This action is unauthorized."})
		return
	}
	if err := uc.Repo.SwitchCurrentCompany(ctx, user, company); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": user})
}

// GET /api/flash
func (uc *UserController) Flash(c *gin.Context) {
	banners, err := uc.Srv.Flash.Pop(c.Request.Context(), app.SessionID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, app.H{"banners": banners})
}

// POST /api/logout
func (uc *UserController) Logout(c *gin.Context) {
	if sid := app.SessionID(c); sid != "" {
		_ = uc.AppSess.Delete(c.Request.Context(), sid)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.JSON(http.StatusOK, app.H{"ok": true})
}
