package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/unclebandit/event-outreach/internal/model"
)

// ParticipantRepository reads and writes the participant CSV files. The
// raw file comes from the event platform export; the cleaned file is the
// canonical input for the downstream stages.
type ParticipantRepository struct {
	RawPath     string
	CleanedPath string
}

var cleanedHeader = []string{"email", "name", "job_title", "has_joined_event", "linkedin_url", "linkedin_flag"}

// LoadRaw reads the raw export. Header names are matched loosely because
// exports arrive with labels like "Job Title" or
// "What is your LinkedIn profile?".
func (r *ParticipantRepository) LoadRaw() ([]model.RawParticipant, error) {
	f, err := os.Open(r.RawPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, expected a header row", r.RawPath)
	}

	idx := headerIndex(records[0])
	col := func(row []string, names ...string) string {
		for _, name := range names {
			if i, ok := idx[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	raws := make([]model.RawParticipant, 0, len(records)-1)
	for n, row := range records[1:] {
		raws = append(raws, model.RawParticipant{
			Email:       col(row, "email"),
			Name:        col(row, "name", "full_name"),
			JobTitle:    col(row, "job_title"),
			HasJoined:   col(row, "has_joined_event", "joined"),
			LinkedinURL: col(row, "linkedin_url", "what_is_your_linkedin_profile?", "linkedin_profile"),
			Line:        n + 2, // 1-based, after the header
		})
	}
	return raws, nil
}

// SaveCleaned writes the canonical cleaned table.
func (r *ParticipantRepository) SaveCleaned(participants []model.Participant) error {
	f, err := os.Create(r.CleanedPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(cleanedHeader); err != nil {
		return err
	}
	for _, p := range participants {
		row := []string{
			p.Email,
			p.Name,
			p.JobTitle,
			strconv.FormatBool(p.HasJoinedEvent),
			p.LinkedinURL,
			strconv.FormatBool(p.LinkedinFlag),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadCleaned reads the cleaned table back for the messaging and
// automation stages.
func (r *ParticipantRepository) LoadCleaned() ([]model.Participant, error) {
	f, err := os.Open(r.CleanedPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, expected a header row", r.CleanedPath)
	}

	idx := headerIndex(records[0])
	participants := make([]model.Participant, 0, len(records)-1)
	for _, row := range records[1:] {
		get := func(name string) string {
			if i, ok := idx[name]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}
		joined, _ := strconv.ParseBool(get("has_joined_event"))
		flagged, _ := strconv.ParseBool(get("linkedin_flag"))
		participants = append(participants, model.Participant{
			Email:          get("email"),
			Name:           get("name"),
			JobTitle:       get("job_title"),
			HasJoinedEvent: joined,
			LinkedinURL:    get("linkedin_url"),
			LinkedinFlag:   flagged,
		})
	}
	return participants, nil
}

// headerIndex normalizes header labels to snake_case lookup keys.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, " ", "_")
		idx[key] = i
	}
	return idx
}
