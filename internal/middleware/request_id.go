package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader リクエストIDのヘッダー名
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID 受信したX-Request-IDを引き継ぎ、なければUUIDを採番する
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom コンテキストに保存されたリクエストID
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
