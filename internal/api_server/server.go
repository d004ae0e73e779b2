package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/voicemed/report-service/internal/auth"
	"github.com/voicemed/report-service/internal/config"
	"github.com/voicemed/report-service/internal/events"
	handlers "github.com/voicemed/report-service/internal/handlers/v1"
	"github.com/voicemed/report-service/internal/service"
	"github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/pkg/metrics"
	"github.com/voicemed/report-service/pkg/middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	bus      *events.Bus
	listener net.Listener
}

// New returns a new instance of the report service API server.
func New(
	cfg *config.Config,
	store store.Store,
	bus *events.Bus,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		bus:      bus,
		listener: listener,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		auth.Authenticator,
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	handler := handlers.NewHandler(
		service.NewJobService(s.store),
		service.NewCatalogService(s.store),
		service.NewAppointmentService(s.store),
		s.bus,
	)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.Health)
		r.Get("/clinics", handler.ListClinics)
		r.Get("/voicebots", handler.ListVoicebots)
		r.Get("/appointments", handler.ListAppointments)
		r.Route("/reports", func(r chi.Router) {
			r.Post("/", handler.CreateReportJob)
			r.Get("/", handler.ListReportJobs)
			r.Get("/subscribe", handler.Subscribe)
			r.Get("/{id}", handler.GetReportJob)
			r.Get("/{id}/download", handler.DownloadReport)
		})
	})

	httpServer := &http.Server{
		Addr:    s.cfg.Service.Address,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		httpServer.SetKeepAlivesEnabled(false)
		_ = httpServer.Shutdown(ctxTimeout)
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
