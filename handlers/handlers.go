package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/promptcast/promptcast/models"
	"github.com/promptcast/promptcast/services"
	"github.com/promptcast/promptcast/storage"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Runner executes a podcast pipeline run. Implemented by services.Pipeline;
// tests substitute a double.
type Runner interface {
	Run(ctx context.Context, req models.PodcastRequest, progress services.ProgressFunc) (*services.Result, error)
}

// Handlers exposes the pipeline over HTTP.
type Handlers struct {
	runner   Runner
	episodes *storage.EpisodeStore
	logger   *slog.Logger
}

func New(runner Runner, episodes *storage.EpisodeStore, logger *slog.Logger) *Handlers {
	return &Handlers{
		runner:   runner,
		episodes: episodes,
		logger:   logger.With(slog.String("component", "handlers")),
	}
}

type generateRequest struct {
	Description string `json:"description"`
	Guests      any    `json:"guests"`
}

// GeneratePodcast handles POST /generate_podcast. The response is either
// {"audio_url": ...} or {"error": <short message>} with a status hint.
func (h *Handlers) GeneratePodcast(c *gin.Context) {
	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON request body"})
		return
	}

	guests, err := parseGuests(body.Guests)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.PublicMessage(err)})
		return
	}

	req := models.PodcastRequest{Description: body.Description, Guests: guests}
	result, err := h.runner.Run(c.Request.Context(), req, nil)
	if err != nil {
		h.logger.Error("pipeline run failed", slog.String("kind", string(models.KindOf(err))), slog.String("error", err.Error()))
		c.JSON(statusForKind(models.KindOf(err)), gin.H{"error": models.PublicMessage(err)})
		return
	}

	h.recordEpisode(c, req, result)
	c.JSON(http.StatusOK, gin.H{"audio_url": result.AudioURL})
}

// stageEvent is one websocket progress message.
type stageEvent struct {
	Stage    string `json:"stage,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GeneratePodcastWS handles GET /generate_podcast/ws. The client sends one
// JSON request; the server streams stage transitions and a terminal event
// carrying the audio URL or an error message.
func (h *Handlers) GeneratePodcastWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	var body generateRequest
	if err := conn.ReadJSON(&body); err != nil {
		_ = conn.WriteJSON(stageEvent{Error: "invalid JSON request"})
		return
	}

	guests, err := parseGuests(body.Guests)
	if err != nil {
		_ = conn.WriteJSON(stageEvent{Error: models.PublicMessage(err)})
		return
	}

	req := models.PodcastRequest{Description: body.Description, Guests: guests}
	result, err := h.runner.Run(c.Request.Context(), req, func(stage services.Stage) {
		_ = conn.WriteJSON(stageEvent{Stage: string(stage)})
	})
	if err != nil {
		h.logger.Error("pipeline run failed", slog.String("kind", string(models.KindOf(err))), slog.String("error", err.Error()))
		_ = conn.WriteJSON(stageEvent{Error: models.PublicMessage(err)})
		return
	}

	h.recordEpisode(c, req, result)
	_ = conn.WriteJSON(stageEvent{AudioURL: result.AudioURL})
}

// ListEpisodes handles GET /episodes for the current session.
func (h *Handlers) ListEpisodes(c *gin.Context) {
	session := sessions.Default(c)
	sessionID, _ := session.Get("sessionID").(string)
	if sessionID == "" {
		c.JSON(http.StatusOK, gin.H{"episodes": []models.Episode{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"episodes": h.episodes.List(sessionID)})
}

// Index handles GET / with the input page.
func (h *Handlers) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"minGuests": models.MinGuests,
		"maxGuests": models.MaxGuests,
	})
}

func (h *Handlers) recordEpisode(c *gin.Context, req models.PodcastRequest, result *services.Result) {
	session := sessions.Default(c)
	sessionID, _ := session.Get("sessionID").(string)
	if sessionID == "" {
		return
	}
	h.episodes.Append(sessionID, models.Episode{
		AssetName:   result.AssetName,
		AudioURL:    result.AudioURL,
		Description: req.Description,
		Guests:      req.Guests,
		CreatedAt:   time.Now().UTC(),
	})
}

// parseGuests accepts the guest count as a JSON number or string.
func parseGuests(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, models.NewValidationError("invalid number of guests")
		}
		return int(n), nil
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, models.NewValidationError("invalid number of guests")
		}
		return parsed, nil
	default:
		return 0, models.NewValidationError("invalid number of guests")
	}
}

func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindGenerationService, models.KindSynthesisService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
