package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/promptcast/promptcast/config"
	"github.com/promptcast/promptcast/handlers"
	"github.com/promptcast/promptcast/models"
	"github.com/promptcast/promptcast/routes"
	"github.com/promptcast/promptcast/services"
	"github.com/promptcast/promptcast/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	ctx := context.Background()

	clientTextToSpeech, err := texttospeech.NewClient(ctx)
	if err != nil {
		log.Fatalf("text-to-speech client: %v", err)
	}
	defer clientTextToSpeech.Close()

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("genai client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(cfg.GeminiModel)
	// model configuration
	model.SetTemperature(1)
	model.SetTopK(64)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(8192)
	model.ResponseMIMEType = "application/json"
	// schema for structured response
	model.ResponseSchema = &genai.Schema{
		Type:        genai.TypeArray,
		Description: "Ordered podcast transcript segments",
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"speaker_id": {
					Type:        genai.TypeString,
					Description: "Speaker identifier like speaker_1",
				},
				"speaker_text": {
					Type:        genai.TypeString,
					Description: "Dialogue for this segment",
				},
			},
			Required: []string{"speaker_id", "speaker_text"},
		},
	}

	gemini := models.NewGemini(model)
	synth := services.NewGoogleSynthesizer(clientTextToSpeech)

	assets, err := storage.NewAssetStore(cfg.AudioDir)
	if err != nil {
		log.Fatalf("asset store: %v", err)
	}
	temp := storage.NewTempStore(cfg.TempDir)
	episodes := storage.NewEpisodeStore()

	svc := services.NewServices(gemini, synth, temp, assets, episodes, logger)
	h := handlers.New(svc.Pipeline, svc.Episodes, logger)

	r := gin.Default()
	routes.RegisterRoutes(r, cfg, h)

	logger.Info("listening", slog.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
