package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"basegraph.app/huddle/internal/http/handler/webhook"
	"basegraph.app/huddle/internal/slackbot"
)

type RouterConfig struct {
	SigningSecret string
}

func SetupRoutes(router *gin.Engine, handler slackbot.Handler, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if cfg.SigningSecret == "" {
		slog.Info("slack webhooks disabled, no signing secret configured")
		return
	}

	slackHandler := webhook.NewSlackWebhookHandler(handler)
	SlackRouter(router.Group("/slack"), slackHandler, cfg.SigningSecret)
}
