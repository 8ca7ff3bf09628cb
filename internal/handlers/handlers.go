package handlers

import (
	"log/slog"

	"github.com/ingStudiosOfficial/supereddit/internal/auth"
	"github.com/ingStudiosOfficial/supereddit/internal/database"
	"github.com/ingStudiosOfficial/supereddit/internal/middleware"
	"github.com/ingStudiosOfficial/supereddit/internal/reddit"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/go-chi/chi/v5"
)

// Server holds all handler dependencies.
type Server struct {
	Store       database.Store
	Sessions    *auth.Sessions
	Discord     *auth.DiscordProvider
	Reddit      *reddit.Client
	Metrics     *utils.MetricsCollector
	Logger      *slog.Logger
	FrontendURL string
}

// NewServer creates a new Server instance with the given components
func NewServer(
	store database.Store,
	sessions *auth.Sessions,
	discord *auth.DiscordProvider,
	redditClient *reddit.Client,
	metrics *utils.MetricsCollector,
	logger *slog.Logger,
	frontendURL string,
) *Server {
	return &Server{
		Store:       store,
		Sessions:    sessions,
		Discord:     discord,
		Reddit:      redditClient,
		Metrics:     metrics,
		Logger:      logger,
		FrontendURL: frontendURL,
	}
}

// Routes builds the full route tree. Every request passes through CORS,
// request logging, and session hydration; identity-gated routes additionally
// sit behind RequireAuth.
func (s *Server) Routes(corsConfig *middleware.CORSConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.CORSMiddleware(corsConfig))
	r.Use(middleware.RequestLogger(s.Logger, s.Metrics))
	r.Use(s.Sessions.WithUser)

	r.Get("/health", s.HandleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/discord", s.HandleDiscordLogin)
		r.Get("/discord/callback", s.HandleDiscordCallback)
		r.Get("/user", s.HandleCurrentUser)
		r.Post("/logout", s.HandleLogout)
	})

	r.Route("/subreddits", func(r chi.Router) {
		r.Get("/", s.HandleListSubreddits)
		r.With(auth.RequireAuth).Post("/", s.HandleCreateSubreddit)
		r.Get("/{name}", s.HandleGetSubreddit)
		r.With(auth.RequireAuth).Post("/{name}/join", s.HandleJoinSubreddit)
		r.With(auth.RequireAuth).Post("/{name}/leave", s.HandleLeaveSubreddit)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", s.HandleListPosts)
		r.With(auth.RequireAuth).Post("/", s.HandleCreatePost)
		r.Get("/{id}", s.HandleGetPost)
		r.With(auth.RequireAuth).Post("/{id}/vote", s.HandleVotePost)
		r.Get("/{postId}/comments", s.HandleListComments)
		r.With(auth.RequireAuth).Post("/{postId}/comments", s.HandleCreateComment)
	})

	r.With(auth.RequireAuth).Post("/comments/{id}/vote", s.HandleVoteComment)

	r.Get("/search", s.HandleSearch)
	r.Get("/users/{username}", s.HandleUserProfile)

	r.With(auth.RequireAuth).Post("/reddit/import", s.HandleRedditImport)

	return r
}
