package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"decor_admin/internal/domain"

	"github.com/sirupsen/logrus"
)

type Messenger interface {
	SendMessage(ctx context.Context, botToken, chatID, text string) error
}

type telegramSendMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewTelegramClient(baseURL string, timeout time.Duration, logger *logrus.Logger) Messenger {
	return &telegramClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *telegramClient) SendMessage(ctx context.Context, botToken, chatID, text string) error {
	payload, err := json.Marshal(telegramSendMessage{ChatID: chatID, Text: text, ParseMode: "Markdown"})
	if err != nil {
		return fmt.Errorf("failed to prepare telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		c.log.Errorf("Telegram: Failed to create sendMessage request: %v", err)
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("Telegram: Failed to execute sendMessage request: %v", err)
		return fmt.Errorf("failed to communicate with telegram: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Errorf("Telegram: sendMessage failed with status %d. Response body: %s", resp.StatusCode, string(bodyBytes))
		return fmt.Errorf("telegram returned status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	c.log.Infof("Telegram: Message delivered to chat %s", chatID)
	return nil
}
