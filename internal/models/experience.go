package models

import (
	"encoding/json"
	"time"
)

// Experience is one session-feedback record. Append-only: inserted once
// at session end and never mutated.
type Experience struct {
	ID              int64           `json:"id"`
	RecordedAt      time.Time       `json:"recordedAt"`
	DurationSeconds float64         `json:"durationSeconds"`
	InteractionMode string          `json:"interactionMode"`
	Profile         json.RawMessage `json:"profile"`
	Output          json.RawMessage `json:"output,omitempty"`
	Feedback        *string         `json:"feedback,omitempty"`
	Rating          *int            `json:"rating,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CreateExperienceRequest is the payload accepted at session end.
// Output carries the conversation history and discussed recipe titles as
// an opaque JSON document owned by the client.
type CreateExperienceRequest struct {
	RecordedAt      *time.Time      `json:"recordedAt,omitempty"`
	DurationSeconds float64         `json:"durationSeconds"`
	InteractionMode string          `json:"interactionMode,omitempty"`
	Profile         json.RawMessage `json:"profile"`
	Output          json.RawMessage `json:"output,omitempty"`
	Feedback        *string         `json:"feedback,omitempty"`
	Rating          *int            `json:"rating,omitempty"`
}
