package services

// Preferred voice pool, keyed by the speaker ids the transcript prompt asks
// for. speaker_1 and speaker_3 are female voices, speaker_2 and speaker_4
// male; the genders are only used as prompt guidance.
// https://cloud.google.com/text-to-speech/docs/voices
var defaultVoicePool = map[string]string{
	"speaker_1": "en-US-Chirp3-HD-Achernar",
	"speaker_2": "en-US-Chirp3-HD-Algenib",
	"speaker_3": "en-US-Chirp3-HD-Aoede",
	"speaker_4": "en-US-Chirp3-HD-Schedar",
}

// FallbackVoice is shared by every overflow or unknown speaker.
const FallbackVoice = "en-US-Standard-A"

// VoiceAssigner maps speaker ids to voices for one pipeline run. The first
// guestCount distinct known speakers get their preferred pool voice; any
// speaker beyond that, or any id outside the pool, degrades to the shared
// fallback voice. Assignments are stable for the rest of the run.
type VoiceAssigner struct {
	pool       map[string]string
	fallback   string
	guestCount int
	assigned   map[string]string
}

func NewVoiceAssigner(guestCount int) *VoiceAssigner {
	return &VoiceAssigner{
		pool:       defaultVoicePool,
		fallback:   FallbackVoice,
		guestCount: guestCount,
		assigned:   make(map[string]string),
	}
}

// Assign resolves the voice for speakerID, assigning one on first encounter.
func (a *VoiceAssigner) Assign(speakerID string) string {
	if voice, ok := a.assigned[speakerID]; ok {
		return voice
	}
	voice := a.fallback
	if preferred, ok := a.pool[speakerID]; ok && len(a.assigned) < a.guestCount {
		voice = preferred
	}
	a.assigned[speakerID] = voice
	return voice
}

// Assignments returns the mapping built so far.
func (a *VoiceAssigner) Assignments() map[string]string {
	out := make(map[string]string, len(a.assigned))
	for k, v := range a.assigned {
		out[k] = v
	}
	return out
}
