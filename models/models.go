package models

import (
	"fmt"
	"strings"
	"time"
)

// Guest count bounds. The preferred voice pool has exactly MaxGuests entries,
// one per speaker_1..speaker_4.
const (
	MinGuests = 1
	MaxGuests = 4
)

// Segment is one speaker-attributed unit of dialogue in a transcript.
type Segment struct {
	SpeakerID string `json:"speaker_id"`
	Text      string `json:"speaker_text"`
}

// Complete reports whether the segment carries both fields. Incomplete
// segments are skipped during synthesis, not treated as fatal.
func (s Segment) Complete() bool {
	return s.SpeakerID != "" && strings.TrimSpace(s.Text) != ""
}

// Transcript is an ordered sequence of dialogue segments.
type Transcript []Segment

// PodcastRequest is the input to a pipeline run.
type PodcastRequest struct {
	Description string
	Guests      int
}

// Validate checks the request before any external call is made.
func (r PodcastRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return NewValidationError("podcast description is required")
	}
	if r.Guests < MinGuests || r.Guests > MaxGuests {
		return NewValidationError(fmt.Sprintf("number of guests must be between %d and %d", MinGuests, MaxGuests))
	}
	return nil
}

// Episode records a completed pipeline run for a session.
type Episode struct {
	AssetName   string    `json:"asset_name"`
	AudioURL    string    `json:"audio_url"`
	Description string    `json:"description"`
	Guests      int       `json:"guests"`
	CreatedAt   time.Time `json:"created_at"`
}
