package routes

import (
	"Gin_postgres_redis_companies/app"
	"Gin_postgres_redis_companies/controllers"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) (*controllers.Srv, error) {
	// 控制器与依赖
	s, err := controllers.GetSrv(a)
	if err != nil {
		return nil, err
	}
	invCtl := controllers.NewCompanyInvitationController(s)
	companyCtl := controllers.NewCompanyController(s)
	userCtl := controllers.NewUserController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.AppSess, s.Repo)
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)
	signedMW := app.SignedInvitation(s.Links, "invitation")

	r.GET("/healthz", func(c *app.Ctx) { c.JSON(http.StatusOK, app.H{"ok": true}) })

	// ------------------------------
	// 邀请：接受靠签名链接，取消需要登录 + removeCompanyEmployee
	// ------------------------------
	inv := r.Group("/company-invitations")
	{
		inv.GET("/:invitation", signedMW, invCtl.Accept)
		inv.POST("/:invitation", signedMW, invCtl.Accept)
		inv.DELETE("/:invitation", authMW, seenMW, invCtl.Destroy)
	}

	api := r.Group("/api", authMW, seenMW)
	{
		api.GET("/me", userCtl.Me)
		api.PUT("/current-company", userCtl.SwitchCompany)
		api.GET("/flash", userCtl.Flash)
		api.POST("/logout", userCtl.Logout)
	}

	// ------------------------------
	// 公司与成员
	// ------------------------------
	companies := api.Group("/companies")
	{
		companies.GET("/:id", companyCtl.Show)
		companies.DELETE("/:id", companyCtl.Destroy)
		companies.GET("/:id/users", companyCtl.Members)
		companies.PUT("/:id/users/:userId", companyCtl.UpdateEmployee)
		companies.DELETE("/:id/users/:userId", companyCtl.RemoveEmployee)
		companies.GET("/:id/invitations", companyCtl.Invitations)
	}
	return s, nil
}
