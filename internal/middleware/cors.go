package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AllowRequestedHeaders プリフライトで要求されたヘッダーをそのまま許可する。
// cors.Config.AllowHeadersを空にした上でcors.Newの前に置く
func AllowRequestedHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
				c.Header("Access-Control-Allow-Headers", requested)
			}
		}
		c.Next()
	}
}
