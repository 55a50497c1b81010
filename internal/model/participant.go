// internal/model/participant.go
package model

import "strings"

// Participant is one row of the cleaned event-participant table.
// Email is the unique key; the cleaner lower-cases it and drops duplicates.
type Participant struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	JobTitle       string `json:"job_title,omitempty"`
	HasJoinedEvent bool   `json:"has_joined_event"`
	LinkedinURL    string `json:"linkedin_url,omitempty"`
	LinkedinFlag   bool   `json:"linkedin_flag"` // missing or malformed profile URL
}

// RawParticipant is one row of the raw CSV before cleaning. All fields
// are kept as strings; the cleaner owns normalization.
type RawParticipant struct {
	Email       string
	Name        string
	JobTitle    string
	HasJoined   string
	LinkedinURL string
	Line        int
}

// FirstName returns the leading token of Name, or "there" when the name
// is empty, so templates never render a blank greeting.
func (p Participant) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}

// HasJobTitle reports whether the participant has a usable job title.
// "unemployed" is treated the same as no title.
func (p Participant) HasJobTitle() bool {
	title := strings.TrimSpace(p.JobTitle)
	return title != "" && !strings.EqualFold(title, "unemployed")
}
