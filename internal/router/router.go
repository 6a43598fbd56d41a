package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"teachings-api/internal/config"
	"teachings-api/internal/handler"
	"teachings-api/internal/metrics"
	"teachings-api/internal/middleware"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Teaching   *handler.TeachingHandler
	Series     *handler.SeriesHandler
	Tag        *handler.TagHandler
	Comment    *handler.CommentHandler
	Engagement *handler.EngagementHandler
}

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	collector *metrics.Collector,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(collector.Middleware)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", collector.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/teachings", func(t chi.Router) {
			t.Get("/", h.Teaching.List)
			t.Get("/latest", h.Teaching.Latest)
			t.Get("/{slug}", h.Teaching.GetBySlug)
		})

		api.Route("/series", func(s chi.Router) {
			s.Get("/", h.Series.List)
			s.Get("/{slug}", h.Series.GetBySlug)
		})

		api.Get("/tags", h.Tag.List)

		api.Route("/comments", func(c chi.Router) {
			c.Get("/", h.Comment.ListForTeaching)
			c.Post("/", h.Comment.Submit)
		})

		api.Post("/newsletter", h.Engagement.Subscribe)
		api.Post("/contact", h.Engagement.SubmitContact)

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/signup", h.Auth.Signup)
			auth.Post("/login", h.Auth.Login)
			// Refresh validates the signature itself so expired tokens
			// can pass; it must not sit behind RequireAuth.
			auth.Get("/refresh-token", h.Auth.RefreshToken)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
			auth.With(authMiddleware.RequireAuth, authMiddleware.RequireRole("admin")).Get("/users", h.Auth.ListUsers)
		})
	})

	return r
}
