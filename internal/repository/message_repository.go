package repository

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/unclebandit/event-outreach/internal/model"
)

const (
	MessagesCSV  = "personalized_messages.csv"
	MessagesJSON = "personalized_messages.json"
	MessagesTXT  = "personalized_messages.txt"
)

// MessageRepository persists generated messages to the three sinks. All
// three carry the same (email, message) pairs and differ only in shape.
type MessageRepository struct {
	Dir   string
	Clock clockwork.Clock
}

func NewMessageRepository(dir string, clock clockwork.Clock) *MessageRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MessageRepository{Dir: dir, Clock: clock}
}

// SaveCSV writes the tabular sink: header plus one email,message row per
// participant. This is the file the automation stage reads back.
func (r *MessageRepository) SaveCSV(msgs []model.Message) (string, error) {
	path := filepath.Join(r.Dir, MessagesCSV)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"email", "message"}); err != nil {
		return "", err
	}
	for _, m := range msgs {
		if err := w.Write([]string{m.Email, m.Content}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

// SaveJSON writes the array-of-objects sink with the full message record.
func (r *MessageRepository) SaveJSON(msgs []model.Message) (string, error) {
	path := filepath.Join(r.Dir, MessagesJSON)
	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, data, 0o644)
}

// SaveTXT writes the human-readable sink, one block per message.
func (r *MessageRepository) SaveTXT(msgs []model.Message) (string, error) {
	path := filepath.Join(r.Dir, MessagesTXT)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	fmt.Fprintf(&b, "Personalized Messages Generated on %s\n", r.Clock.Now().Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	for i, m := range msgs {
		fmt.Fprintf(&b, "Message %d:\n", i+1)
		fmt.Fprintf(&b, "To: %s (%s)\n", m.Email, m.Name)
		fmt.Fprintf(&b, "Message: %s\n", m.Content)
		b.WriteString(strings.Repeat("-", 40) + "\n\n")
	}

	_, err = f.WriteString(b.String())
	return path, err
}

// LoadCSV reads the tabular sink back as bare (email, message) records.
func (r *MessageRepository) LoadCSV() ([]model.Message, error) {
	path := filepath.Join(r.Dir, MessagesCSV)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, expected a header row", path)
	}

	msgs := make([]model.Message, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) < 2 {
			continue
		}
		msgs = append(msgs, model.Message{Email: row[0], Content: row[1]})
	}
	return msgs, nil
}

// LoadJSON reads the full message records back, attendance included. The
// server uses this to show priority without re-joining the cleaned table.
func (r *MessageRepository) LoadJSON() ([]model.Message, error) {
	path := filepath.Join(r.Dir, MessagesJSON)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var msgs []model.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
