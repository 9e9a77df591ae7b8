package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-pipeline/internal/infra/http/middleware"
)

type RouterConfig struct {
	Leads       *LeadHandler
	Activities  *ActivityHandler
	Tasks       *TaskHandler
	Health      *HealthHandler
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
	}))

	// escritas passam pelo rate limiter por IP
	limit := func(h http.HandlerFunc) http.Handler {
		if cfg.RateLimiter == nil {
			return h
		}
		return cfg.RateLimiter.Handler(h)
	}

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/pipeline", cfg.Leads.HandlePipeline)
	r.Get("/stats", cfg.Leads.HandleStats)

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", cfg.Leads.HandleList)
		r.Method(http.MethodPost, "/", limit(cfg.Leads.HandleCreate))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", cfg.Leads.HandleGet)
			r.Method(http.MethodPut, "/", limit(cfg.Leads.HandleUpdate))
			r.Method(http.MethodDelete, "/", limit(cfg.Leads.HandleDelete))
			r.Method(http.MethodPost, "/stage", limit(cfg.Leads.HandleMoveStage))
			r.Get("/activities", cfg.Activities.HandleLeadActivities)
			r.Method(http.MethodPost, "/activities", limit(cfg.Activities.HandleAddActivity))
			r.Get("/tasks", cfg.Activities.HandleLeadTasks)
		})
	})

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", cfg.Activities.HandleList)
		r.Get("/{id}", cfg.Activities.HandleGet)
		r.Method(http.MethodPut, "/{id}", limit(cfg.Activities.HandleUpdate))
		r.Method(http.MethodDelete, "/{id}", limit(cfg.Activities.HandleDelete))
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", cfg.Tasks.HandleList)
		r.Method(http.MethodPost, "/", limit(cfg.Tasks.HandleCreate))
		r.Method(http.MethodPost, "/digest", limit(cfg.Tasks.HandleDigest))
		r.Method(http.MethodPost, "/{id}/complete", limit(cfg.Tasks.HandleComplete))
	})

	return r
}
