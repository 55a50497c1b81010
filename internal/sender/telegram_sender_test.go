package sender

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unclebandit/event-outreach/internal/config"
	appErrors "github.com/unclebandit/event-outreach/internal/errors"
	"github.com/unclebandit/event-outreach/internal/model"
)

func newTelegramTest(t *testing.T, handler http.HandlerFunc) (*TelegramSender, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTelegramSender(config.Telegram{
		BaseURL:  srv.URL,
		BotToken: "123:abc",
	}), srv
}

func TestTelegramSend(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	tg, _ := newTelegramTest(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	entry := &model.QueueEntry{ID: "msg_001", RecipientEmail: "a@x.com", MessageText: "hello"}
	if err := tg.Send(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotBody["chat_id"] != "a@x.com" || gotBody["text"] != "hello" {
		t.Errorf("unexpected payload %v", gotBody)
	}
}

func TestTelegramSendFailure(t *testing.T) {
	tg, _ := newTelegramTest(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	entry := &model.QueueEntry{ID: "msg_001", RecipientEmail: "a@x.com", MessageText: "hello", AttemptCount: 1}
	err := tg.Send(context.Background(), entry)

	var sendErr *appErrors.ErrSendFailure
	if !errors.As(err, &sendErr) {
		t.Fatalf("expected ErrSendFailure, got %v", err)
	}
	if sendErr.Recipient != "a@x.com" || sendErr.Attempt != 2 {
		t.Errorf("unexpected failure detail: %+v", sendErr)
	}
}

func TestTelegramValidateToken(t *testing.T) {
	tg, _ := newTelegramTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot123:abc/getMe" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := tg.ValidateToken(context.Background()); err != nil {
		t.Errorf("expected token to validate, got %v", err)
	}

	bad, _ := newTelegramTest(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
	if err := bad.ValidateToken(context.Background()); err == nil {
		t.Errorf("expected validation failure")
	}
}
