// internal/model/message.go
package model

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
)

// PriorityFor maps attendance onto the scheduling bucket: attendees get
// the immediate follow-up, everyone else the deferred one.
func PriorityFor(hasJoined bool) Priority {
	if hasJoined {
		return PriorityHigh
	}
	return PriorityNormal
}

// Message is the rendered outreach text for one participant. Immutable
// after generation; serialized 1:1 into the CSV/JSON/TXT sinks.
type Message struct {
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	Content        string   `json:"message"`
	JobTitle       string   `json:"job_title,omitempty"`
	HasJoinedEvent bool     `json:"has_joined_event"`
	Priority       Priority `json:"priority"`
}
