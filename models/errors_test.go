package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfClassified(t *testing.T) {
	err := NewValidationError("bad input")
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation kind, got %s", KindOf(err))
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewNoAudioGeneratedError())
	if KindOf(err) != KindNoAudio {
		t.Fatalf("expected no_audio kind through wrapping, got %s", KindOf(err))
	}
}

func TestKindOfUnclassified(t *testing.T) {
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatal("expected unclassified error to map to internal kind")
	}
}

func TestPublicMessageHidesCause(t *testing.T) {
	err := NewGenerationServiceError(errors.New("rpc error: secret internals"))
	msg := PublicMessage(err)
	if msg != "transcript generation failed" {
		t.Fatalf("unexpected public message: %q", msg)
	}
}

func TestRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  PodcastRequest
		ok   bool
	}{
		{"valid", PodcastRequest{Description: "two friends discuss coffee", Guests: 2}, true},
		{"empty description", PodcastRequest{Description: "  ", Guests: 2}, false},
		{"guests too low", PodcastRequest{Description: "x", Guests: 0}, false},
		{"guests too high", PodcastRequest{Description: "x", Guests: 5}, false},
	}
	for _, tc := range cases {
		err := tc.req.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("%s: expected validation error", tc.name)
			}
			if KindOf(err) != KindValidation {
				t.Fatalf("%s: expected validation kind, got %s", tc.name, KindOf(err))
			}
		}
	}
}
