package app

import (
	"Gin_postgres_redis_companies/db"
	"Gin_postgres_redis_companies/models"
	"Gin_postgres_redis_companies/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

const (
	ctxUserID    = "userID"
	ctxUser      = "user"
	ctxSessionID = "sessionID"
)

func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		// 确认用户仍存在，后续 handler 直接拿 *models.User
		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(ctxUserID, u.ID)
		c.Set(ctxUser, u)
		c.Set(ctxSessionID, ck.Value)

		c.Next()
	}
}

// CurrentUser 返回 AuthRequired 放进上下文的用户
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// SessionID 优先取已鉴权的会话，否则退回 Cookie（未登录的请求也能收到一次性提示）
func SessionID(c *gin.Context) string {
	if v, ok := c.Get(ctxSessionID); ok {
		if sid, _ := v.(string); sid != "" {
			return sid
		}
	}
	if ck, err := c.Request.Cookie(AppSessionCookie); err == nil {
		return ck.Value
	}
	return ""
}
