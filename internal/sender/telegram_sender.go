// internal/sender/telegram_sender.go
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/unclebandit/event-outreach/internal/config"
	appErrors "github.com/unclebandit/event-outreach/internal/errors"
	"github.com/unclebandit/event-outreach/internal/model"
)

// TelegramSender posts messages through the Telegram bot API. Recipients
// are addressed by email; the bot resolves them to chat ids on its side.
type TelegramSender struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewTelegramSender(cfg config.Telegram) *TelegramSender {
	return &TelegramSender{
		baseURL: cfg.BaseURL,
		token:   cfg.BotToken,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ValidateToken calls getMe to confirm the bot token before any send.
func (t *TelegramSender) ValidateToken(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint("getMe"), nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram getMe returned %s", resp.Status)
	}
	return nil
}

func (t *TelegramSender) Send(ctx context.Context, entry *model.QueueEntry) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": entry.RecipientEmail,
		"text":    entry.MessageText,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return appErrors.NewSendFailure(entry.RecipientEmail, entry.AttemptCount+1, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return appErrors.NewSendFailure(entry.RecipientEmail, entry.AttemptCount+1,
			fmt.Errorf("telegram sendMessage returned %s", resp.Status))
	}
	return nil
}

func (t *TelegramSender) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
}
