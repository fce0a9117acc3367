package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies where in the pipeline a failure happened.
type ErrorKind string

const (
	// KindValidation: bad input, nothing was attempted.
	KindValidation ErrorKind = "validation"
	// KindGenerationService: the transcript model call itself failed.
	KindGenerationService ErrorKind = "generation_service"
	// KindTranscriptFormat: the model responded but the content failed
	// schema validation.
	KindTranscriptFormat ErrorKind = "transcript_format"
	// KindSynthesisService: a speech synthesis call failed; fatal to the run.
	KindSynthesisService ErrorKind = "synthesis_service"
	// KindNoAudio: every transcript segment was skipped, nothing to stitch.
	KindNoAudio ErrorKind = "no_audio"
	// KindStitching: concatenation or asset write failed, or input was empty.
	KindStitching ErrorKind = "stitching"
	// KindInternal: anything not otherwise classified.
	KindInternal ErrorKind = "internal"
)

// PipelineError is a classified pipeline failure. The message is short and
// safe to return to callers; the wrapped cause is for logs only.
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error { return e.Err }

func NewValidationError(msg string) error {
	return &PipelineError{Kind: KindValidation, Message: msg}
}

func NewGenerationServiceError(err error) error {
	return &PipelineError{Kind: KindGenerationService, Message: "transcript generation failed", Err: err}
}

func NewTranscriptFormatError(reason string) error {
	return &PipelineError{Kind: KindTranscriptFormat, Message: "transcript format invalid: " + reason}
}

func NewSynthesisServiceError(voice string, err error) error {
	return &PipelineError{Kind: KindSynthesisService, Message: "speech synthesis failed for voice " + voice, Err: err}
}

func NewNoAudioGeneratedError() error {
	return &PipelineError{Kind: KindNoAudio, Message: "no audio segments were successfully generated"}
}

func NewStitchingError(msg string, err error) error {
	return &PipelineError{Kind: KindStitching, Message: msg, Err: err}
}

// KindOf extracts the classification of err. Unclassified errors map to
// KindInternal, nil to the empty kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}

// PublicMessage returns a short caller-safe message for err, never a
// wrapped cause chain.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return "an internal server error occurred"
}
