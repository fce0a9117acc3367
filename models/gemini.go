package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// Gemini generates podcast transcripts through a generative model.
type Gemini struct {
	model *genai.GenerativeModel
}

func NewGemini(model *genai.GenerativeModel) *Gemini {
	return &Gemini{model: model}
}

const promptTemplate = `Generate a short, fictional podcast transcript based on the following description: %q.
The podcast should feature exactly %d distinct speakers.
Format the output as a JSON array of objects. Each object must have two keys:
"speaker_id": A string identifier like "speaker_1", "speaker_2", ..., up to "speaker_%d".
"speaker_text": The dialogue for that speaker segment.

## Important
* speaker_1 and speaker_3 are female voices, while speaker_2 and speaker_4 are Male voices.

Ensure the JSON is valid and contains only the array. Do NOT include any extra text, markdown, or formatting outside the JSON array.
The transcript should flow naturally with dialogue between the speakers.
Example structure:
[
  {"speaker_id": "speaker_1", "speaker_text": "Hello and welcome!"},
  {"speaker_id": "speaker_2", "speaker_text": "Great to be here."}
]`

// Generate asks the model for a transcript with guests distinct speakers and
// validates the response. A transport or service failure is classified as a
// generation service error; a response that cannot be parsed into the
// expected array is a transcript format error.
func (g *Gemini) Generate(ctx context.Context, description string, guests int) (Transcript, error) {
	prompt := fmt.Sprintf(promptTemplate, description, guests, guests)

	session := g.model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return nil, NewGenerationServiceError(err)
	}

	var raw strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				raw.WriteString(string(txt))
			}
		}
	}

	return ParseTranscript(raw.String())
}

// ParseTranscript validates the model's raw text response and converts it to
// an ordered transcript. Code fences around the JSON array are stripped
// first, since models sometimes ignore the no-formatting instruction.
func ParseTranscript(raw string) (Transcript, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return nil, NewTranscriptFormatError("empty response")
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &elems); err != nil {
		return nil, NewTranscriptFormatError("response is not a JSON array")
	}

	transcript := make(Transcript, 0, len(elems))
	for i, elem := range elems {
		var obj map[string]any
		if err := json.Unmarshal(elem, &obj); err != nil {
			return nil, NewTranscriptFormatError(fmt.Sprintf("element %d is not an object", i))
		}
		seg, err := segmentFields(obj, i)
		if err != nil {
			return nil, err
		}
		transcript = append(transcript, seg)
	}
	return transcript, nil
}

// segmentFields extracts the speaker id and dialogue text from a transcript
// element. Exact keys are speaker_id and speaker_text; as a leniency policy
// any key containing "speaker" (and not "text") is accepted for the id and
// any key containing "text" for the dialogue. No other variants are accepted.
func segmentFields(obj map[string]any, index int) (Segment, error) {
	var seg Segment
	speakerOK, textOK := false, false

	for key, value := range obj {
		str, isString := value.(string)
		lower := strings.ToLower(key)
		switch {
		case strings.Contains(lower, "text"):
			if !isString {
				return Segment{}, NewTranscriptFormatError(fmt.Sprintf("element %d text field is not a string", index))
			}
			seg.Text = str
			textOK = true
		case strings.Contains(lower, "speaker"):
			if !isString {
				return Segment{}, NewTranscriptFormatError(fmt.Sprintf("element %d speaker field is not a string", index))
			}
			seg.SpeakerID = str
			speakerOK = true
		}
	}

	if !speakerOK {
		return Segment{}, NewTranscriptFormatError(fmt.Sprintf("element %d has no speaker field", index))
	}
	if !textOK {
		return Segment{}, NewTranscriptFormatError(fmt.Sprintf("element %d has no text field", index))
	}
	return seg, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}
