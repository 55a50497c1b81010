package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/unclebandit/event-outreach/internal/controller"
	"github.com/unclebandit/event-outreach/internal/model"
	"github.com/unclebandit/event-outreach/internal/repository"
	"github.com/unclebandit/event-outreach/internal/service"
)

func newTestController(t *testing.T) (*controller.StatusController, *repository.MessageRepository, *repository.QueueRepository) {
	t.Helper()
	dir := t.TempDir()
	messages := repository.NewMessageRepository(dir, nil)
	queue := &repository.QueueRepository{Path: filepath.Join(dir, "telegram_queue.json")}
	ctrl := &controller.StatusController{
		Messages:  messages,
		Queue:     queue,
		Messenger: &service.MessageService{},
	}
	return ctrl, messages, queue
}

func TestPreviewHandler(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	body := map[string]interface{}{
		"name":             "Alice Smith",
		"job_title":        "Data Engineer",
		"has_joined_event": true,
		"linkedin_flag":    true,
	}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/messages/preview", bytes.NewReader(b))
	w := httptest.NewRecorder()
	ctrl.Preview(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	msg, ok := res["rendered_message"].(string)
	if !ok {
		t.Fatalf("rendered_message not found or not a string")
	}
	if !strings.Contains(msg, "Alice") || !strings.Contains(msg, "data engineer") {
		t.Errorf("unexpected preview: %q", msg)
	}
	if !strings.Contains(msg, "LinkedIn") {
		t.Errorf("expected LinkedIn postscript in preview: %q", msg)
	}
	if res["priority"] != "high" {
		t.Errorf("expected high priority, got %v", res["priority"])
	}
}

func TestPreviewMatchesBatchGenerator(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	p := model.Participant{Name: "Bob", HasJoinedEvent: false}

	b, _ := json.Marshal(map[string]interface{}{"name": "Bob", "has_joined_event": false})
	req := httptest.NewRequest("POST", "/messages/preview", bytes.NewReader(b))
	w := httptest.NewRecorder()
	ctrl.Preview(w, req)

	var res map[string]interface{}
	if err := json.NewDecoder(w.Result().Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	svc := &service.MessageService{}
	if res["rendered_message"] != svc.Render(p) {
		t.Errorf("preview diverges from batch generator: %v", res["rendered_message"])
	}
}

func TestListMessagesPagination(t *testing.T) {
	ctrl, messages, _ := newTestController(t)

	total := 25
	var msgs []model.Message
	for i := 1; i <= total; i++ {
		msgs = append(msgs, model.Message{
			Email:    fmt.Sprintf("user%02d@x.com", i),
			Content:  "hello",
			Priority: model.PriorityNormal,
		})
	}
	if _, err := messages.SaveJSON(msgs); err != nil {
		t.Fatal(err)
	}

	pageSize := 10
	seen := map[string]bool{}
	totalPages := (total + pageSize - 1) / pageSize

	for page := 1; page <= totalPages; page++ {
		req := httptest.NewRequest(
			"GET",
			"/messages?page="+strconv.Itoa(page)+"&page_size="+strconv.Itoa(pageSize),
			nil,
		)
		w := httptest.NewRecorder()
		ctrl.ListMessages(w, req)

		resp := w.Result()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var res struct {
			Data       []model.Message `json:"data"`
			Pagination struct {
				Page       int `json:"page"`
				PageSize   int `json:"page_size"`
				TotalCount int `json:"total_count"`
				TotalPages int `json:"total_pages"`
			} `json:"pagination"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if res.Pagination.TotalCount != total {
			t.Errorf("expected total %d, got %d", total, res.Pagination.TotalCount)
		}
		if res.Pagination.TotalPages != totalPages {
			t.Errorf("expected %d pages, got %d", totalPages, res.Pagination.TotalPages)
		}
		for _, m := range res.Data {
			if seen[m.Email] {
				t.Errorf("duplicate message %s across pages", m.Email)
			}
			seen[m.Email] = true
		}
	}

	if len(seen) != total {
		t.Errorf("expected %d unique messages across pages, got %d", total, len(seen))
	}
}

func TestQueueStats(t *testing.T) {
	ctrl, _, queue := newTestController(t)

	doc := &model.QueueDocument{
		RunID:          "run-1",
		TotalMessages:  3,
		HighPriority:   1,
		NormalPriority: 2,
		Entries: []*model.QueueEntry{
			{ID: "msg_001", Status: model.StatusSent, Priority: model.PriorityHigh},
			{ID: "msg_002", Status: model.StatusSent, Priority: model.PriorityNormal},
			{ID: "msg_003", Status: model.StatusFailed, Priority: model.PriorityNormal},
		},
	}
	if err := queue.Save(doc); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/queue/stats", nil)
	w := httptest.NewRecorder()
	ctrl.QueueStats(w, req)

	var stats map[string]int
	if err := json.NewDecoder(w.Result().Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	want := map[string]int{"total": 3, "sent": 2, "failed": 1, "pending": 0, "high": 1, "normal": 2}
	for k, v := range want {
		if stats[k] != v {
			t.Errorf("stats[%s]: expected %d, got %d", k, v, stats[k])
		}
	}
}
