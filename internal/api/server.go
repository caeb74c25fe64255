package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/MJE43/roulette-odds-go/internal/config"
	"github.com/MJE43/roulette-odds-go/internal/lib/logger/sl"
	"github.com/MJE43/roulette-odds-go/internal/wheel"
)

// Server handles HTTP requests
type Server struct {
	cfg          config.Config
	logger       *slog.Logger
	errorHandler *ErrorHandler
	validate     *validator.Validate
	monitor      *HealthMonitor
}

// NewServer creates a new API server
func NewServer(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(sl.String("component", "api"))

	s := &Server{
		cfg:          cfg,
		logger:       logger,
		errorHandler: NewErrorHandler(logger),
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		monitor:      NewHealthMonitor(),
	}

	logger.Info("server initialized",
		sl.String("default_wheel", string(cfg.DefaultWheel)),
		sl.Any("wheels", wheel.Types()),
		sl.String("engine_version", EngineVersion),
	)

	return s
}

// Routes sets up the HTTP routes with proper middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.LoggingMiddleware)
	r.Use(s.errorHandler.RecoveryHandler)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	r.Use(s.CORSMiddleware)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/wheels", s.instrument("wheels", s.handleListWheels))

		// {wheel} accepts "default" for the configured wheel.
		r.Route("/wheels/{wheel}", func(r chi.Router) {
			r.Get("/areas", s.instrument("areas", s.handleListAreas))
			r.Get("/areas/{areaID}", s.instrument("area", s.handleGetArea))
			r.Get("/slots/{slot}/areas", s.instrument("slot_areas", s.handleSlotAreas))
			r.Post("/evaluate", s.instrument("evaluate", s.handleEvaluate))
			r.Post("/aggregate", s.instrument("aggregate", s.handleAggregate))
			r.Post("/distribution", s.instrument("distribution", s.handleDistribution))
		})
	})

	return r
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("X-Engine-Version", EngineVersion)
	render.Status(r, status)
	render.JSON(w, r, data)
}
