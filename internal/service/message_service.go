// internal/service/message_service.go
package service

import (
	"strings"

	"github.com/rs/zerolog/log"

	appErrors "github.com/unclebandit/event-outreach/internal/errors"
	"github.com/unclebandit/event-outreach/internal/model"
)

// The closed set of template variants. Selection is exhaustive over
// (attendance, job-title presence); the LinkedIn postscript is appended
// independently. Rendering is pure: same participant, same text.
const (
	templateJoinedTitled = "🎉 Hey {name}, thanks for joining our session! As a {job_title}, we think you'll love our upcoming AI workflow tools. Want early access?"
	templateJoined       = "🎉 Hey {name}, thanks for joining our session! We're excited to have had you participate and would love to keep you updated on our upcoming events and tools!"
	templateMissedTitled = "Hi {name}, sorry we missed you at the last event! We're preparing another session that might better suit your interests as a {job_title}. Hope to see you next time!"
	templateMissed       = "Hi {name}, sorry we missed you at the last event! We're preparing another session with exciting content that we think you'll find valuable. Hope to see you next time!"

	linkedinPostscript = " P.S. We'd love to connect with you on LinkedIn to keep you updated on future opportunities!"
)

// GenerateReport summarizes one generation pass.
type GenerateReport struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
}

// MessageService turns cleaned participants into outreach messages.
type MessageService struct{}

// Render selects the template variant for the participant and fills the
// placeholders. Attendees get their title lower-cased mid-sentence.
func (s *MessageService) Render(p model.Participant) string {
	var template, title string
	switch {
	case p.HasJoinedEvent && p.HasJobTitle():
		template, title = templateJoinedTitled, strings.ToLower(p.JobTitle)
	case p.HasJoinedEvent:
		template = templateJoined
	case p.HasJobTitle():
		template, title = templateMissedTitled, p.JobTitle
	default:
		template = templateMissed
	}

	message := renderTemplate(template, map[string]string{
		"name":      p.FirstName(),
		"job_title": title,
	})

	if p.LinkedinFlag {
		message += linkedinPostscript
	}
	return message
}

// Generate produces the message record for one participant. A missing
// email is the only per-row failure.
func (s *MessageService) Generate(p model.Participant) (model.Message, error) {
	if strings.TrimSpace(p.Email) == "" {
		return model.Message{}, appErrors.NewMissingField("email", 0)
	}

	return model.Message{
		Email:          p.Email,
		Name:           p.Name,
		Content:        s.Render(p),
		JobTitle:       p.JobTitle,
		HasJoinedEvent: p.HasJoinedEvent,
		Priority:       model.PriorityFor(p.HasJoinedEvent),
	}, nil
}

// GenerateAll produces exactly one message per participant with a
// non-empty email. Skips are counted, not raised.
func (s *MessageService) GenerateAll(participants []model.Participant) ([]model.Message, *GenerateReport) {
	report := &GenerateReport{}
	msgs := make([]model.Message, 0, len(participants))

	for _, p := range participants {
		msg, err := s.Generate(p)
		if err != nil {
			report.Skipped++
			log.Warn().Err(err).Str("name", p.Name).Msg("⚠️ skipping participant")
			continue
		}
		msgs = append(msgs, msg)
		report.Generated++
	}

	return msgs, report
}

// renderTemplate substitutes {key} placeholders in the template.
func renderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}
