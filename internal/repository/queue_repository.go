package repository

import (
	"encoding/json"
	"os"

	"github.com/unclebandit/event-outreach/internal/model"
)

// QueueRepository persists the chat-bot send queue as a JSON document.
type QueueRepository struct {
	Path string
}

func (r *QueueRepository) Save(doc *model.QueueDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.Path, data, 0o644)
}

func (r *QueueRepository) Load() (*model.QueueDocument, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, err
	}
	var doc model.QueueDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
