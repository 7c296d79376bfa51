package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hana/meditation-progress-api/internal/api/handlers"
	"github.com/hana/meditation-progress-api/internal/api/middleware"
	"github.com/hana/meditation-progress-api/internal/service"
	"github.com/hana/meditation-progress-api/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	sessionsHandler := handlers.NewSessionsHandler(services.Progress)
	statsHandler := handlers.NewStatsHandler(services.Progress)
	achievementsHandler := handlers.NewAchievementsHandler(services.Progress)
	progressHandler := handlers.NewProgressHandler(services.Progress)
	preferencesHandler := handlers.NewPreferencesHandler(services.Preferences)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", sessionsHandler.Create)
				r.Get("/", sessionsHandler.List)
				r.Get("/range", sessionsHandler.ListRange)
			})

			r.Get("/stats", statsHandler.Get)
			r.Get("/achievements", achievementsHandler.List)
			r.Get("/progress/weekly", progressHandler.Weekly)

			r.Route("/preferences", func(r chi.Router) {
				r.Get("/", preferencesHandler.Get)
				r.Put("/", preferencesHandler.Update)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
