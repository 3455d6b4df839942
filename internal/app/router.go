package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"recovery-chat/internal/config"
	"recovery-chat/internal/infrastructure/logging"
	"recovery-chat/internal/infrastructure/metrics"
	"recovery-chat/internal/infrastructure/realtime"
	"recovery-chat/internal/pkg/chat/application/port"
	chatport "recovery-chat/internal/pkg/chat/persistence/repository/port"
	chathttp "recovery-chat/internal/pkg/chat/presentation/http"
	profileport "recovery-chat/internal/pkg/profile/persistence/repository/port"
	profilehttp "recovery-chat/internal/pkg/profile/presentation/http"
)

type routerDeps struct {
	cfg         config.Config
	logger      *zap.Logger
	registry    *prometheus.Registry
	httpMetrics *metrics.HTTP
	chatMetrics *metrics.Chat
	chatRepo    chatport.ChatRepository
	profiles    profileport.ProfileRepository
	directory   port.ProfileDirectory
	notifier    port.Notifier
	realtime    *realtime.Router
	ping        func(context.Context) error
}

// newRouter mounts health, metrics and all API routes under /api.
func newRouter(d routerDeps) *gin.Engine {
	if d.cfg.GinMode != "" {
		gin.SetMode(d.cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(d.logger), d.httpMetrics.Middleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d.cfg.RequestTimeout)
		defer cancel()
		if err := d.ping(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "UNAVAILABLE"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler(d.registry)))

	api := r.Group("/api")
	chathttp.RegisterRoutes(api, chathttp.Deps{
		Repo:           d.chatRepo,
		Profiles:       d.directory,
		Notifier:       d.notifier,
		Router:         d.realtime,
		Logger:         d.logger,
		Metrics:        d.chatMetrics,
		RequestTimeout: d.cfg.RequestTimeout,
		StorageTimeout: d.cfg.StorageTimeout,
	})
	profilehttp.RegisterRoutes(api, d.profiles, d.cfg.RequestTimeout)
	return r
}
