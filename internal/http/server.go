// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"tripmaster/internal/auth"
	"tripmaster/internal/http/handlers"
	"tripmaster/internal/http/middleware"
	"tripmaster/internal/modules/trip"
	"tripmaster/internal/modules/user"
)

type ServerDeps struct {
	Trips        *trip.Service
	Users        *user.Service
	Tokens       *auth.Tokens
	Sessions     *auth.SessionStore
	CookieSecure bool
	WebOrigin    string
	Log          *zap.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Server{deps: deps}
}

// Routes builds the gin engine and wraps it with CORS. Cookies carry the
// session, so the CORS layer must allow credentials for the web origin.
func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(middleware.Recovery(s.deps.Log))
	engine.Use(middleware.Logging(s.deps.Log))

	authHandler := handlers.NewAuthHandler(s.deps.Users, s.deps.Tokens, s.deps.Sessions, s.deps.CookieSecure, s.deps.Log)
	settingsHandler := handlers.NewSettingsHandler(s.deps.Users)
	tripHandler := handlers.NewTripHandler(s.deps.Trips)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	authed := api.Group("")
	authed.Use(middleware.Auth(s.deps.Tokens))
	authed.GET("/auth/me", authHandler.Me)

	authed.GET("/settings", settingsHandler.Get)
	authed.PUT("/settings", settingsHandler.Update)

	authed.POST("/trips", tripHandler.Create)
	authed.GET("/trips", tripHandler.List)
	authed.GET("/trips/:id", tripHandler.Get)
	authed.PUT("/trips/:id", tripHandler.Update)
	authed.DELETE("/trips/:id", tripHandler.Delete)

	authed.POST("/trips/:id/collaborators", tripHandler.AddCollaborator)
	authed.PUT("/trips/:id/collaborators/:userId", tripHandler.UpdateCollaborator)
	authed.DELETE("/trips/:id/collaborators/:userId", tripHandler.RemoveCollaborator)

	authed.POST("/trips/:id/generate-itinerary", tripHandler.GenerateItinerary)
	authed.POST("/trips/:id/enrich", tripHandler.EnrichPlaces)
	authed.POST("/trips/:id/route", tripHandler.ComputeRoutes)

	corsLayer := cors.New(cors.Options{
		AllowedOrigins:   []string{s.deps.WebOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	return corsLayer.Handler(engine)
}
