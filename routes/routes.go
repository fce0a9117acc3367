package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptcast/promptcast/config"
	"github.com/promptcast/promptcast/handlers"
)

// RegisterRoutes wires sessions, CORS, static serving and the podcast
// endpoints onto the router.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, h *handlers.Handlers) {
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("promptcast", store))
	r.Use(ensureSession())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	corsConfig.AllowMethods = []string{"GET", "POST"}
	corsConfig.AllowHeaders = []string{"Content-Type", "text/plain", "application/json"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.LoadHTMLGlob("templates/*")
	r.Static("/static", "./static")

	r.GET("/", h.Index)
	r.POST("/generate_podcast", h.GeneratePodcast)
	r.GET("/generate_podcast/ws", h.GeneratePodcastWS)
	r.GET("/episodes", h.ListEpisodes)
}

// ensureSession assigns a session ID on first contact so episode history
// works from the very first generate call.
func ensureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("sessionID") == nil {
			session.Set("sessionID", uuid.New().String())
			_ = session.Save()
		}
		c.Next()
	}
}
