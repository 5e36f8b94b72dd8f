// Package router ginエンジンへのハンドラーとミドルウェアの登録
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teams-api/internal/application"
	"teams-api/internal/handler"
	"teams-api/internal/metrics"
	"teams-api/internal/middleware"
)

// New ルーティングを設定したginエンジンを作成
func New(teamsService application.TeamsService, recorder *metrics.Recorder, logger *zap.SugaredLogger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	config.AllowHeaders = nil
	config.ExposeHeaders = []string{middleware.RequestIDHeader}

	router.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(recorder),
		middleware.AllowRequestedHeaders(),
		cors.New(config),
	)

	router.NoRoute(handler.NotFound)
	router.NoMethod(handler.MethodNotAllowed)

	teamsHandler := handler.NewTeamsHandler(teamsService)
	healthHandler := handler.NewHealthHandler(teamsService)

	teams := router.Group("/teams")
	{
		teams.GET("", teamsHandler.ListTeams)
		teams.GET("/:id", teamsHandler.GetTeam)
		teams.POST("", teamsHandler.CreateTeam)
	}

	router.GET("/api/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	return router
}
