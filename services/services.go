// Package services implements the podcast synthesis pipeline: voice
// assignment, speech synthesis, audio stitching and the orchestrator that
// sequences them.
package services

import (
	"log/slog"

	"github.com/promptcast/promptcast/storage"
)

// Services aggregates the pipeline and the stores the HTTP layer needs.
type Services struct {
	Pipeline *Pipeline
	Episodes *storage.EpisodeStore
}

func NewServices(generator TranscriptGenerator, synth Synthesizer, temp *storage.TempStore, assets *storage.AssetStore, episodes *storage.EpisodeStore, logger *slog.Logger) *Services {
	stitcher := NewStitcher(assets)
	return &Services{
		Pipeline: NewPipeline(generator, synth, stitcher, temp, assets, logger),
		Episodes: episodes,
	}
}
