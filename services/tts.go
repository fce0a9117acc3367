package services

import (
	"context"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/promptcast/promptcast/models"
)

// Synthesizer converts one text segment plus a chosen voice into raw audio
// bytes. Concrete implementation wraps Google Cloud Text-to-Speech; tests
// substitute a double.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// GoogleSynthesizer implements Synthesizer with fixed en-US locale and
// LINEAR16 encoding, so every segment of a run shares the same audio format.
type GoogleSynthesizer struct {
	client *texttospeech.Client
}

func NewGoogleSynthesizer(client *texttospeech.Client) *GoogleSynthesizer {
	return &GoogleSynthesizer{client: client}
}

func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	req := texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "en-US",
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_LINEAR16,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, &req)
	if err != nil {
		return nil, models.NewSynthesisServiceError(voice, err)
	}
	return resp.AudioContent, nil
}
