package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"basegraph.app/huddle/internal/http/middleware"
	"basegraph.app/huddle/internal/slackbot"
)

// SlackWebhookHandler receives Events API callbacks, interactivity payloads
// and slash commands. Requests reach it only after signature verification.
type SlackWebhookHandler struct {
	handler slackbot.Handler
}

func NewSlackWebhookHandler(handler slackbot.Handler) *SlackWebhookHandler {
	return &SlackWebhookHandler{handler: handler}
}

func (h *SlackWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()
	body := middleware.RawBody(c)

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		// slackevents rejects inner event types it has no struct for.
		if json.Valid(body) {
			slog.DebugContext(ctx, "ignoring unsupported event", "error", err)
			c.Status(http.StatusOK)
			return
		}
		slog.WarnContext(ctx, "invalid events api payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if event.Type == slackevents.URLVerification {
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"challenge": challenge.Challenge})
		return
	}

	h.handler.HandleEvent(ctx, event)
	c.Status(http.StatusOK)
}

func (h *SlackWebhookHandler) HandleInteraction(c *gin.Context) {
	ctx := c.Request.Context()

	payload := c.PostForm("payload")
	if payload == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing payload"})
		return
	}

	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &cb); err != nil {
		slog.WarnContext(ctx, "invalid interaction payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if resp := h.handler.HandleInteraction(ctx, &cb); resp != nil {
		c.JSON(http.StatusOK, resp)
		return
	}
	c.Status(http.StatusOK)
}

func (h *SlackWebhookHandler) HandleCommand(c *gin.Context) {
	ctx := c.Request.Context()

	cmd, err := slack.SlashCommandParse(c.Request)
	if err != nil {
		slog.WarnContext(ctx, "invalid slash command payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	h.handler.HandleCommand(ctx, cmd)
	c.Status(http.StatusOK)
}
