package app

import (
	"Gin_postgres_redis_companies/links"
	"Gin_postgres_redis_companies/membership"
	"Gin_postgres_redis_companies/policy"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RenderErrors 统一把 handler 通过 c.Error 抛出的错误映射成 HTTP 响应
func RenderErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := ErrorResponse(err)
		if status == http.StatusInternalServerError {
			log.Printf("[error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(status, body)
	}
}

func ErrorResponse(err error) (int, H) {
	var verr *membership.ValidationError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, H{"error": "not found"}
	case errors.Is(err, policy.ErrForbidden):
		return http.StatusForbidden, H{"error": "This action is unauthorized."}
	case errors.Is(err, links.ErrInvalidSignature):
		return http.StatusForbidden, H{"error": "Invalid signature."}
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, H{
			"error":  verr.Message,
			"errors": H{verr.Field: []string{verr.Message}},
		}
	default:
		return http.StatusInternalServerError, H{"error": "server error"}
	}
}
