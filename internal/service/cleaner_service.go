// internal/service/cleaner_service.go
package service

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	appErrors "github.com/unclebandit/event-outreach/internal/errors"
	"github.com/unclebandit/event-outreach/internal/model"
)

// CleanReport summarizes one cleaning pass.
type CleanReport struct {
	TotalRows     int `json:"total_rows"`
	Kept          int `json:"kept"`
	Duplicates    int `json:"duplicates"`
	MissingEmail  int `json:"missing_email"`
	MissingName   int `json:"missing_name"`
	FlaggedLinks  int `json:"flagged_links"`
	MissingTitles int `json:"missing_titles"`
}

// CleanerService normalizes the raw participant export into the canonical
// cleaned table: unique lower-cased emails, boolean attendance, flagged
// LinkedIn profiles.
type CleanerService struct{}

// Clean processes rows in order; the first occurrence of an email wins.
// Rows without an email are skipped and counted, never fatal.
func (s *CleanerService) Clean(raws []model.RawParticipant) ([]model.Participant, *CleanReport) {
	report := &CleanReport{TotalRows: len(raws)}
	seen := make(map[string]bool, len(raws))
	participants := make([]model.Participant, 0, len(raws))

	for _, raw := range raws {
		email := strings.ToLower(strings.TrimSpace(raw.Email))
		if email == "" {
			report.MissingEmail++
			log.Warn().Int("line", raw.Line).Msg("⚠️ skipping row without email")
			continue
		}
		if seen[email] {
			report.Duplicates++
			continue
		}
		seen[email] = true

		p := model.Participant{
			Email:          email,
			Name:           strings.TrimSpace(raw.Name),
			JobTitle:       strings.TrimSpace(raw.JobTitle),
			HasJoinedEvent: parseYesNo(raw.HasJoined),
			LinkedinURL:    strings.TrimSpace(raw.LinkedinURL),
		}

		if p.Name == "" {
			report.MissingName++
		}
		if p.JobTitle == "" {
			report.MissingTitles++
		}
		if !validLinkedinURL(p.LinkedinURL) {
			p.LinkedinFlag = true
			report.FlaggedLinks++
			if p.LinkedinURL != "" {
				log.Warn().Err(appErrors.NewMalformedLink(p.LinkedinURL)).
					Str("email", p.Email).Msg("⚠️ flagged linkedin profile")
			}
		}

		participants = append(participants, p)
		report.Kept++
	}

	return participants, report
}

// parseYesNo normalizes the attendance flag. Unrecognized values count as
// not attended.
func parseYesNo(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "true", "t", "1":
		return true
	}
	return false
}

// validLinkedinURL accepts http(s) URLs on a linkedin.com host. Anything
// else flags the participant for the LinkedIn follow-up postscript.
func validLinkedinURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Host)
	return host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com")
}
