package rest

import (
	"net/http"

	"share-adage-backend/interfaces/http/rest/handlers"
	"share-adage-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	adages   *handlers.AdageHandler
	episodes *handlers.EpisodeHandler
	users    *handlers.UserHandler
	hearts   *handlers.HeartHandler
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	adages *handlers.AdageHandler,
	episodes *handlers.EpisodeHandler,
	users *handlers.UserHandler,
	hearts *handlers.HeartHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		adages:   adages,
		episodes: episodes,
		users:    users,
		hearts:   hearts,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)

	authenticate := middleware.Authenticate(rt.logger)

	// Adage endpoints. Reading and liking are open to everyone; only
	// creating under one's own name needs a caller identity.
	router.Route("/adage", func(r chi.Router) {
		r.With(authenticate).Post("/", rt.adages.Create)
		r.Post("/guest", rt.adages.CreateByGuest)
		r.Get("/", rt.adages.ListMonthly)
		r.Get("/{adageId}", rt.adages.Get)
		r.Patch("/{adageId}", rt.adages.Like)
	})

	// Episode endpoints. Posting is open because guests post too; the
	// body's userId decides which branch the service takes.
	router.Route("/episode", func(r chi.Router) {
		r.Post("/", rt.episodes.Post)
		r.With(authenticate).Delete("/", rt.episodes.Delete)
		r.Get("/{adageId}/{userId}", rt.episodes.Get)
		r.Patch("/{adageId}/{userId}", rt.episodes.LikeFromGuest)
		r.Patch("/{adageId}/{userId}/{senderUserId}", rt.episodes.LikeFromUser)
	})

	// Account endpoints
	router.Route("/user", func(r chi.Router) {
		r.Post("/", rt.users.SignUp)
		r.Post("/confirm", rt.users.Confirm)
		r.Post("/login", rt.users.Login)
		r.Post("/reset/code", rt.users.SendResetPasswordCode)
		r.Post("/reset", rt.users.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Delete("/", rt.users.Delete)
			r.Patch("/name", rt.users.Rename)
			r.Get("/profile", rt.users.Profile)
			r.Get("/episode", rt.users.ListEpisodes)
			r.Post("/heart/{userId}", rt.hearts.Send)
			r.Get("/heart", rt.hearts.ListHistory)
			r.Delete("/heart", rt.hearts.DeleteHistory)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
