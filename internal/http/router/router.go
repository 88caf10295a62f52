package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/DevOps-In-Motion/buildalert/internal/http/envelope"
	"github.com/DevOps-In-Motion/buildalert/internal/http/handler"
	"github.com/DevOps-In-Motion/buildalert/internal/http/middleware"
)

type RouterConfig struct {
	ServiceName  string
	OTelEnabled  bool
	IsProduction bool
}

func Setup(cfg RouterConfig, webhook *handler.WebhookHandler, health *handler.HealthHandler) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Order matters: RequestID assigns the ID → OTel creates the span →
	// Recovery catches panics → Logger logs with trace context.
	router.Use(middleware.RequestID())
	if cfg.OTelEnabled {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())

	router.GET("/health", health.Health)
	router.GET("/ready", health.Ready)
	router.POST("/webhook/build-failure", webhook.BuildFailure)

	// Unknown paths and wrong methods still answer with the envelope so
	// every caller-visible error has the same shape.
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, envelope.Error(
			"Endpoint not found", http.StatusNotFound, "NOT_FOUND", nil))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, envelope.Error(
			"Method not allowed", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", nil))
	})

	return router
}
