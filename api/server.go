/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. Metrics:    Prometheus request count and latency
  5. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/shifts/*        Scheduling
  /api/stats/*         Monthly financial record
  /api/pending         Open receivables and payables
  /api/settlements     Bulk settlement
  /api/alerts          Derived alerts
  /api/forecast        Hospital payment forecast
  /api/hospitals/*     Payer profiles
  /api/fiscal-notes/*  Invoices
  /api/agreements/*    Swap agreements
  /api/locations/*     Location search
  /metrics             Prometheus scrape endpoint
  /healthz             Liveness probe

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.CreateShift)
			r.Get("/{id}", h.GetShift)
			r.Put("/{id}", h.UpdateShift)
			r.Delete("/{id}", h.DeleteShift)
		})

		r.Get("/stats/monthly", h.GetMonthlyStats)
		r.Get("/pending", h.GetPending)
		r.Post("/settlements", h.BulkSettle)
		r.Get("/alerts", h.GetAlerts)
		r.Get("/forecast", h.GetForecast)

		r.Route("/hospitals", func(r chi.Router) {
			r.Get("/", h.ListHospitals)
			r.Post("/", h.CreateHospital)
			r.Put("/{id}", h.UpdateHospital)
			r.Delete("/{id}", h.DeleteHospital)
		})

		r.Route("/fiscal-notes", func(r chi.Router) {
			r.Get("/", h.ListFiscalNotes)
			r.Post("/", h.CreateFiscalNote)
		})

		r.Route("/agreements", func(r chi.Router) {
			r.Get("/", h.ListAgreements)
			r.Post("/", h.RegisterAgreement)
			r.Post("/{id}/settle", h.SettleAgreement)
		})

		r.Get("/locations/search", h.SearchLocations)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", h.Health)

	return r
}
