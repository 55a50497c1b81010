// internal/controller/status_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/unclebandit/event-outreach/internal/model"
	"github.com/unclebandit/event-outreach/internal/repository"
	"github.com/unclebandit/event-outreach/internal/service"
)

// StatusController serves the pipeline's artifacts over HTTP: generated
// messages, the persisted send queue, and an ad-hoc message preview.
type StatusController struct {
	Messages  *repository.MessageRepository
	Queue     *repository.QueueRepository
	Messenger *service.MessageService
}

func (c *StatusController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ListMessages returns the generated messages with pagination.
func (c *StatusController) ListMessages(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	msgs, err := c.Messages.LoadJSON()
	if err != nil {
		http.Error(w, "failed to load messages: "+err.Error(), http.StatusInternalServerError)
		return
	}

	total := len(msgs)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":       msgs[start:end],
		"pagination": pagination,
	})
}

// GetQueue returns the persisted queue document as-is.
func (c *StatusController) GetQueue(w http.ResponseWriter, r *http.Request) {
	doc, err := c.Queue.Load()
	if err != nil {
		http.Error(w, "failed to load queue: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

// QueueStats returns entry counts by status and priority.
func (c *StatusController) QueueStats(w http.ResponseWriter, r *http.Request) {
	doc, err := c.Queue.Load()
	if err != nil {
		http.Error(w, "failed to load queue: "+err.Error(), http.StatusInternalServerError)
		return
	}

	stats := map[string]int{
		"total":   len(doc.Entries),
		"pending": 0,
		"sent":    0,
		"failed":  0,
		"high":    doc.HighPriority,
		"normal":  doc.NormalPriority,
	}
	for _, e := range doc.Entries {
		if _, ok := stats[string(e.Status)]; ok {
			stats[string(e.Status)]++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// Preview renders the outreach message for an ad-hoc participant without
// touching any file. Same decision table as the batch generator.
func (c *StatusController) Preview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name           string `json:"name"`
		JobTitle       string `json:"job_title"`
		HasJoinedEvent bool   `json:"has_joined_event"`
		LinkedinFlag   bool   `json:"linkedin_flag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	p := model.Participant{
		Name:           body.Name,
		JobTitle:       body.JobTitle,
		HasJoinedEvent: body.HasJoinedEvent,
		LinkedinFlag:   body.LinkedinFlag,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"rendered_message": c.Messenger.Render(p),
		"priority":         model.PriorityFor(body.HasJoinedEvent),
	})
}
