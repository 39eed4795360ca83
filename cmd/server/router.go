package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/neet-pulse/internal/api"
	apiMiddleware "github.com/phrazzld/neet-pulse/internal/api/middleware"
)

// setupRouter registers middleware and routes.
func (a *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(a.logger))

	records := api.NewRecordHandler(a.deps.Records, a.deps.Analyzer, a.logger)
	analysisLimit := apiMiddleware.RateLimit(apiMiddleware.NewPerMinuteLimiter(
		a.config.Server.AnalysisPerMinute,
		a.config.Server.AnalysisBurst,
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/records", records.ListRecords)
		r.Post("/records", records.CreateRecord)
		r.Delete("/records/{id}", records.DeleteRecord)

		r.Get("/target", records.GetTarget)
		r.Put("/target", records.PutTarget)

		r.Get("/summary", records.GetSummary)
		r.With(analysisLimit).Post("/analysis", records.Analyze)
	})

	r.Get("/health", api.Health(a.deps.AnalysisEnabled))

	return r
}
