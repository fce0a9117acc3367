package services

import (
	"context"
	"log/slog"

	"github.com/promptcast/promptcast/models"
	"github.com/promptcast/promptcast/storage"
)

// Stage identifies a step of the pipeline state machine.
type Stage string

const (
	StageValidatingInput      Stage = "validating_input"
	StageGeneratingTranscript Stage = "generating_transcript"
	StageSynthesizingSegments Stage = "synthesizing_segments"
	StageStitching            Stage = "stitching"
	StageCleaningUp           Stage = "cleaning_up"
	StageDone                 Stage = "done"
	StageFailed               Stage = "failed"
)

// ProgressFunc observes stage transitions. May be nil.
type ProgressFunc func(stage Stage)

// TranscriptGenerator produces an ordered transcript from a description and
// guest count. Implemented by models.Gemini; tests substitute a double.
type TranscriptGenerator interface {
	Generate(ctx context.Context, description string, guests int) (models.Transcript, error)
}

// Result is the outcome of a successful pipeline run.
type Result struct {
	AssetName string
	AudioURL  string
	Segments  int
}

// Pipeline sequences transcript generation, voice assignment, per-segment
// synthesis and stitching, and guarantees cleanup of every temporary
// artifact regardless of outcome.
type Pipeline struct {
	generator TranscriptGenerator
	synth     Synthesizer
	stitcher  *Stitcher
	temp      *storage.TempStore
	assets    *storage.AssetStore
	logger    *slog.Logger
}

func NewPipeline(generator TranscriptGenerator, synth Synthesizer, stitcher *Stitcher, temp *storage.TempStore, assets *storage.AssetStore, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		generator: generator,
		synth:     synth,
		stitcher:  stitcher,
		temp:      temp,
		assets:    assets,
		logger:    logger.With(slog.String("component", "pipeline")),
	}
}

// Run executes one full podcast generation. Temporary artifacts are deleted
// before Run returns, whichever stage failed. On failure the returned error
// carries its classification; no partial asset is ever referenced.
func (p *Pipeline) Run(ctx context.Context, req models.PodcastRequest, progress ProgressFunc) (*Result, error) {
	report := func(stage Stage) {
		if progress != nil {
			progress(stage)
		}
	}

	var tempFiles []string
	res, err := p.run(ctx, req, &tempFiles, report)

	report(StageCleaningUp)
	p.cleanup(tempFiles)

	if err != nil {
		report(StageFailed)
		return nil, err
	}
	report(StageDone)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, req models.PodcastRequest, tempFiles *[]string, report ProgressFunc) (*Result, error) {
	report(StageValidatingInput)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	report(StageGeneratingTranscript)
	transcript, err := p.generator.Generate(ctx, req.Description, req.Guests)
	if err != nil {
		return nil, err
	}
	p.logger.Info("transcript generated", slog.Int("segments", len(transcript)))

	report(StageSynthesizingSegments)
	voices := NewVoiceAssigner(req.Guests)
	for i, segment := range transcript {
		if !segment.Complete() {
			p.logger.Warn("skipping incomplete segment", slog.Int("index", i), slog.String("speaker", segment.SpeakerID))
			continue
		}

		voice := voices.Assign(segment.SpeakerID)
		p.logger.Debug("synthesizing segment", slog.Int("index", i), slog.String("speaker", segment.SpeakerID), slog.String("voice", voice))

		// A single synthesis failure aborts the whole run.
		audio, err := p.synth.Synthesize(ctx, segment.Text, voice)
		if err != nil {
			return nil, err
		}

		path, err := p.temp.Write(audio)
		if err != nil {
			return nil, models.NewStitchingError("failed to store audio segment", err)
		}
		*tempFiles = append(*tempFiles, path)
	}

	if len(*tempFiles) == 0 {
		return nil, models.NewNoAudioGeneratedError()
	}

	report(StageStitching)
	name, err := p.stitcher.Stitch(*tempFiles)
	if err != nil {
		return nil, err
	}

	p.logger.Info("podcast generated", slog.String("asset", name), slog.Int("segments", len(*tempFiles)))
	return &Result{
		AssetName: name,
		AudioURL:  p.assets.URL(name),
		Segments:  len(*tempFiles),
	}, nil
}

// cleanup best-effort deletes every temporary artifact created during the
// run. Individual deletion failures are logged, never propagated.
func (p *Pipeline) cleanup(tempFiles []string) {
	for _, path := range tempFiles {
		if err := p.temp.Remove(path); err != nil {
			p.logger.Warn("failed to remove temporary segment", slog.String("path", path), slog.String("error", err.Error()))
		}
	}
}
