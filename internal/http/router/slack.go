package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/huddle/internal/http/handler/webhook"
	"basegraph.app/huddle/internal/http/middleware"
)

func SlackRouter(router *gin.RouterGroup, handler *webhook.SlackWebhookHandler, signingSecret string) {
	router.Use(middleware.SlackSignature(signingSecret))
	router.POST("/events", handler.HandleEvent)
	router.POST("/interactions", handler.HandleInteraction)
	router.POST("/commands", handler.HandleCommand)
}
