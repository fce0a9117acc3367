package models

import (
	"errors"
	"testing"
)

func TestParseTranscriptValidArray(t *testing.T) {
	raw := `[
		{"speaker_id": "speaker_1", "speaker_text": "Hello and welcome!"},
		{"speaker_id": "speaker_2", "speaker_text": "Great to be here."}
	]`
	transcript, err := ParseTranscript(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(transcript))
	}
	if transcript[0].SpeakerID != "speaker_1" || transcript[0].Text != "Hello and welcome!" {
		t.Fatalf("unexpected first segment: %+v", transcript[0])
	}
	if transcript[1].SpeakerID != "speaker_2" {
		t.Fatalf("unexpected second segment: %+v", transcript[1])
	}
}

func TestParseTranscriptStripsCodeFences(t *testing.T) {
	raw := "```json\n[{\"speaker_id\": \"speaker_1\", \"speaker_text\": \"hi\"}]\n```"
	fenced, err := ParseTranscript(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plain, err := ParseTranscript(`[{"speaker_id": "speaker_1", "speaker_text": "hi"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fenced) != len(plain) || fenced[0] != plain[0] {
		t.Fatalf("fenced result %+v differs from plain result %+v", fenced, plain)
	}
}

func TestParseTranscriptBareFence(t *testing.T) {
	raw := "```\n[{\"speaker_id\": \"speaker_1\", \"speaker_text\": \"hi\"}]\n```"
	transcript, err := ParseTranscript(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transcript) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(transcript))
	}
}

func TestParseTranscriptRejectsObject(t *testing.T) {
	_, err := ParseTranscript(`{"speaker_id": "speaker_1", "speaker_text": "hi"}`)
	assertKind(t, err, KindTranscriptFormat)
}

func TestParseTranscriptRejectsNonJSON(t *testing.T) {
	_, err := ParseTranscript("I am sorry, I cannot generate that podcast.")
	assertKind(t, err, KindTranscriptFormat)
}

func TestParseTranscriptRejectsMissingTextField(t *testing.T) {
	_, err := ParseTranscript(`[{"speaker_id": "speaker_1"}]`)
	assertKind(t, err, KindTranscriptFormat)
}

func TestParseTranscriptRejectsMissingSpeakerField(t *testing.T) {
	_, err := ParseTranscript(`[{"speaker_text": "hello"}]`)
	assertKind(t, err, KindTranscriptFormat)
}

func TestParseTranscriptRejectsNonObjectElement(t *testing.T) {
	_, err := ParseTranscript(`["just a string"]`)
	assertKind(t, err, KindTranscriptFormat)
}

func TestParseTranscriptLenientKeys(t *testing.T) {
	// Near-matching key names containing "speaker" and "text" are accepted.
	transcript, err := ParseTranscript(`[{"speaker": "speaker_1", "text": "hello"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transcript[0].SpeakerID != "speaker_1" || transcript[0].Text != "hello" {
		t.Fatalf("unexpected segment: %+v", transcript[0])
	}
}

func TestParseTranscriptKeepsEmptyTextSegments(t *testing.T) {
	// An empty value is not a parse failure; the pipeline skips it later.
	transcript, err := ParseTranscript(`[{"speaker_id": "speaker_1", "speaker_text": ""}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transcript[0].Complete() {
		t.Fatal("expected segment with empty text to be incomplete")
	}
}

func assertKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var pe *PipelineError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PipelineError, got %T: %v", err, err)
	}
	if pe.Kind != kind {
		t.Fatalf("expected kind %s, got %s", kind, pe.Kind)
	}
}
