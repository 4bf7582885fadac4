// Package api is the HTTP facade over the bracket engine: a thin JSON
// adapter translating chi routes into calls against the internal/bracket
// façade, with the internal/repository row lock serialising concurrent
// requests against the same bracket (spec §6's "frontend" boundary).
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bracketeer/bracket/internal/api/handlers"
	apimw "github.com/bracketeer/bracket/internal/api/middleware"
	"github.com/bracketeer/bracket/internal/metrics"
	"github.com/bracketeer/bracket/internal/realtime"
	"github.com/bracketeer/bracket/internal/repository"
)

// NewRouter wires the bracket/match handlers onto a chi router, gating
// organiser-only operations (validate, disqualify, TO-report, reopen)
// behind bearer auth.
func NewRouter(repo repository.BracketRepository, hub *realtime.Hub) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:4200", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(metrics.Middleware)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	bracketHandler := handlers.NewBracketHandler(repo, hub)
	matchHandler := handlers.NewMatchHandler(repo, hub)

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		realtime.ServeWs(hub, w, req)
	})

	r.Route("/brackets", func(r chi.Router) {
		r.Post("/", bracketHandler.Create)

		r.Route("/{bracketID}", func(r chi.Router) {
			r.Get("/", bracketHandler.Get)
			r.Delete("/", bracketHandler.Delete)
			r.Get("/layout", bracketHandler.Layout)
			r.Post("/participants", bracketHandler.AddParticipant)
			r.Put("/seeding", bracketHandler.UpdateSeeding)
			r.Post("/start", bracketHandler.Start)

			r.Get("/matches/to-play", matchHandler.MatchesToPlay)
			r.Post("/matches/report", matchHandler.Report)
			r.Get("/participants/{playerID}/next-opponent", matchHandler.NextOpponent)
			r.Post("/participants/{playerID}/withdraw", matchHandler.Withdraw)

			r.Group(func(r chi.Router) {
				r.Use(apimw.Auth)
				r.Post("/matches/organiser-report", matchHandler.OrganiserReport)
				r.Post("/matches/{matchID}/validate", matchHandler.Validate)
				r.Post("/matches/{matchID}/reopen", matchHandler.Reopen)
				r.Post("/participants/{playerID}/disqualify", matchHandler.Disqualify)
			})
		})
	})

	return r
}
