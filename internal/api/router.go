// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mood-wallet/internal/api/auth"
	"mood-wallet/internal/api/handler"
	"mood-wallet/internal/api/ratelimit"
	"mood-wallet/internal/metrics"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Achievements *handler.AchievementHandler
	Wallet       *handler.WalletHandler
	Journal      *handler.JournalHandler
}

// Options configures the /api group.
type Options struct {
	JWTSecret []byte
	RateLimit float64 // Requests per second per user; zero disables throttling
	RateBurst int
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, opts Options, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.StripSlashes)                    // Accept both /api/wallet and /api/wallet/
	r.Use(metrics.Middleware)                         // Count requests per route
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret, logger))
		if opts.RateLimit > 0 {
			r.Use(ratelimit.New(opts.RateLimit, opts.RateBurst, logger).Handler)
		}

		r.Get("/achievements", h.Achievements.List)
		r.Post("/achievements/claim", h.Achievements.Claim)
		r.Get("/wallet", h.Wallet.Get)
		r.Post("/diaries", h.Journal.SaveDiary)
		r.Post("/photos", h.Journal.AddPhoto)
	})

	return r
}
