package telegram

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const webhookPath = "/telegram/webhook"

// Bot owns the webhook lifecycle for a single Telegram bot and feeds
// incoming updates to the handler.
type Bot struct {
	client  *Client
	handler *UpdateHandler
	secret  string
	baseURL string
}

func NewBot(client *Client, handler *UpdateHandler, baseURL, secret string) *Bot {
	return &Bot{
		client:  client,
		handler: handler,
		secret:  secret,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (b *Bot) WebhookPath() string {
	return webhookPath
}

func (b *Bot) Start() error {
	url := b.baseURL + webhookPath
	if err := b.client.SetWebhook(url, b.secret); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	log.Printf("[Bot] webhook registered at %s", url)
	return nil
}

func (b *Bot) Stop() {
	if err := b.client.DeleteWebhook(); err != nil {
		log.Printf("[Bot] delete webhook: %v", err)
	}
}

// HandleWebhook accepts updates from Telegram. Processing happens on a
// separate goroutine so Telegram gets its 200 immediately; ordering per
// chat is enforced by the chat locks, not by the HTTP layer.
func (b *Bot) HandleWebhook(c *gin.Context) {
	if b.secret != "" && c.GetHeader("X-Telegram-Bot-Api-Secret-Token") != b.secret {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	var upd Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		log.Printf("[Bot] decode update: %v", err)
		c.Status(http.StatusOK)
		return
	}

	go b.handler.Handle(upd)
	c.Status(http.StatusOK)
}
