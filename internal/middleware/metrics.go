package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"teams-api/internal/metrics"
)

// Metrics ルートテンプレート単位でリクエスト数とレイテンシを記録する
func Metrics(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// 未定義ルートは1つのラベルにまとめる
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		recorder.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
