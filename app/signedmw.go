package app

import (
	"Gin_postgres_redis_companies/links"

	"github.com/gin-gonic/gin"
)

// SignedInvitation 校验邀请链接的 signature；未配置签名密钥时放行
func SignedInvitation(signer *links.Signer, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !signer.Enabled() {
			c.Next()
			return
		}
		if err := signer.Verify(c.Query(links.SignatureParam), c.Param(param)); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}
