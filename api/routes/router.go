package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripdesk/tripdesk-backend/api/controllers"
	"github.com/tripdesk/tripdesk-backend/api/middleware"
	"github.com/tripdesk/tripdesk-backend/internal/enquiries"
	"github.com/tripdesk/tripdesk-backend/internal/rules"
	"github.com/tripdesk/tripdesk-backend/internal/staff"
	"github.com/tripdesk/tripdesk-backend/pkg/config"
	"github.com/tripdesk/tripdesk-backend/pkg/db"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
	"github.com/tripdesk/tripdesk-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs. The engine is passed by
// interface so controller tests can stub the whole cascade.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	Engine  controllers.Assigner
	Enquiry enquiries.Service
	Staff   staff.Service
	Rules   rules.Service
	Metrics prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.CORS(),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, readinessDeps(deps)))
	})

	if deps.Metrics != nil {
		r.Get("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}).ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/enquiries", func(r chi.Router) {
			r.Get("/", controllers.ListEnquiries(deps.Enquiry, deps.Logger))
			r.Get("/{enquiryCode}", controllers.GetEnquiry(deps.Enquiry, deps.Logger))
			r.Get("/{enquiryCode}/history", controllers.EnquiryHistory(deps.Enquiry, deps.Logger))
			r.Post("/{enquiryCode}/assign", controllers.TriggerAssignment(deps.Engine, deps.Logger))
		})

		r.Route("/assignment", func(r chi.Router) {
			r.Route("/rules", func(r chi.Router) {
				r.Get("/", controllers.ListRules(deps.Rules, deps.Logger))
				r.Put("/{ruleName}", controllers.ToggleRule(deps.Rules, deps.Logger))
			})
			r.Route("/sequence", func(r chi.Router) {
				r.Get("/", controllers.FetchSequence(deps.Staff, deps.Logger))
				r.Put("/", controllers.ReorderSequence(deps.Staff, deps.Logger))
				r.Put("/{staffId}/auto-assign", controllers.SetStaffAutoAssign(deps.Staff, deps.Logger))
			})
		})

		r.Get("/staff", controllers.ListStaff(deps.Staff, deps.Logger))
	})

	return r
}

func readinessDeps(deps Deps) map[string]controllers.Pinger {
	checks := map[string]controllers.Pinger{}
	if deps.DB != nil {
		checks["postgres"] = deps.DB
	}
	if deps.Redis != nil {
		checks["redis"] = deps.Redis
	}
	return checks
}
