package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID())
	r.Use(traceID())
	r.Use(recoverer())
	r.Use(accessLog())
	r.Use(metrics())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Idempotency-Key", "X-Request-ID", "X-Trace-Id"},
		ExposedHeaders: []string{"X-Request-ID", "X-Trace-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK", "message": "Backend is running"})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if s.ping != nil {
			if err := s.ping(r.Context()); err != nil {
				writeError(w, http.StatusServiceUnavailable, "db not ready")
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	api := s.routes()
	r.Mount("/api", api)
	r.Mount("/", api)
	return r
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(idempotent(s.idem))

	r.Route("/rates", func(r chi.Router) {
		r.Get("/", s.ListRates)
		r.Post("/", s.CreateRate)
		r.Get("/latest", s.GetLatestRates)
		r.Get("/historical", s.GetHistoricalRates)
		r.Get("/paginated", s.GetPaginatedRates)
		r.Get("/chart.png", s.GetRateChart)
		r.Put("/{id}", s.UpdateRate)
		r.Delete("/{id}", s.DeleteRate)
	})

	r.Route("/currencies", func(r chi.Router) {
		r.Get("/", s.ListCurrencies)
		r.Post("/", s.CreateCurrency)
		r.Get("/{id}", s.GetCurrency)
		r.Put("/{id}", s.UpdateCurrency)
		r.Delete("/{id}", s.DeleteCurrency)
	})
	return r
}
