// Package http exposes the showroom services as a JSON API with a websocket
// endpoint for the receptionist chat.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"showroom/internal/cache"
	"showroom/internal/inventory"
	"showroom/internal/log"
	"showroom/internal/middleware/ratelimit"
	"showroom/internal/middleware/security"
	"showroom/internal/middleware/trace"
	"showroom/internal/services"
)

// CheckFunc is a readiness probe for one dependency.
type CheckFunc func(ctx context.Context) error

type Options struct {
	Finance      *services.FinanceService
	Bookings     *services.BookingService
	Account      *services.AccountService
	Receptionist *services.ReceptionistService
	Inventory    *inventory.Service

	Logger             *log.Logger
	RateLimitPerMinute int

	// Checks run on /readyz, keyed by dependency name.
	Checks map[string]CheckFunc
	// CacheStats reports the inventory search cache on /metrics.
	CacheStats func() cache.Stats
}

type Server struct {
	http.Server

	finance      *services.FinanceService
	bookings     *services.BookingService
	account      *services.AccountService
	receptionist *services.ReceptionistService
	inventory    *inventory.Service

	logger     *log.Logger
	structured *log.StructuredLogger
	limiter    *ratelimit.Limiter
	detector   *security.Detector
	tracer     *trace.Middleware
	upgrader   websocket.Upgrader

	checks     map[string]CheckFunc
	cacheStats func() cache.Stats
	started    time.Time

	shutdownOnce sync.Once
}

func NewServer(addr string, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	limiterCfg := ratelimit.DefaultConfig()
	if opts.RateLimitPerMinute > 0 {
		limiterCfg.RequestsPerMinute = opts.RateLimitPerMinute
	}

	s := &Server{
		finance:      opts.Finance,
		bookings:     opts.Bookings,
		account:      opts.Account,
		receptionist: opts.Receptionist,
		inventory:    opts.Inventory,
		logger:       logger,
		structured:   log.NewStructuredLogger(logger),
		limiter:      ratelimit.NewLimiter(limiterCfg),
		detector:     security.NewDetector(),
		checks:       opts.Checks,
		cacheStats:   opts.CacheStats,
		started:      time.Now(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.withVisitor, security.NoStore)

	fin := api.PathPrefix("/finance").Subrouter()
	fin.Use(log.ComponentMiddleware(log.ComponentFinance))
	fin.HandleFunc("/calculate", s.handleCalculate).Methods(http.MethodPost)
	fin.HandleFunc("/schedule", s.handleSchedule).Methods(http.MethodGet)
	fin.HandleFunc("/presets", s.handlePresets).Methods(http.MethodGet)
	fin.HandleFunc("/calculations", s.handleListCalculations).Methods(http.MethodGet)
	fin.HandleFunc("/calculations", s.handleSaveCalculation).Methods(http.MethodPost)
	fin.HandleFunc("/calculations", s.handleClearCalculations).Methods(http.MethodDelete)

	inv := api.PathPrefix("/inventory").Subrouter()
	inv.Use(log.ComponentMiddleware(log.ComponentInventory))
	inv.HandleFunc("", s.handleSearchInventory).Methods(http.MethodGet)
	inv.HandleFunc("/options", s.handleInventoryOptions).Methods(http.MethodGet)
	inv.HandleFunc("/{id:[0-9]+}", s.handleGetVehicle).Methods(http.MethodGet)

	td := api.PathPrefix("/test-drives").Subrouter()
	td.Use(log.ComponentMiddleware(log.ComponentTestDrive))
	td.HandleFunc("", s.handleListBookings).Methods(http.MethodGet)
	td.HandleFunc("", s.handleBook).Methods(http.MethodPost)
	td.HandleFunc("/slots", s.handleSlots).Methods(http.MethodGet)
	td.HandleFunc("/{id}", s.handleCancelBooking).Methods(http.MethodDelete)

	rc := api.PathPrefix("/receptionist").Subrouter()
	rc.Use(log.ComponentMiddleware(log.ComponentReceptionist))
	rc.HandleFunc("/history", s.handleChatHistory).Methods(http.MethodGet)
	rc.HandleFunc("/messages", s.handleSendMessage).Methods(http.MethodPost)
	rc.HandleFunc("/history", s.handleClearChat).Methods(http.MethodDelete)
	rc.HandleFunc("/quick-actions", s.handleQuickActions).Methods(http.MethodGet)
	rc.HandleFunc("/quick-actions/{id}", s.handleQuickAction).Methods(http.MethodPost)
	rc.HandleFunc("/ws", s.handleChatSocket).Methods(http.MethodGet)

	acc := api.PathPrefix("/account").Subrouter()
	acc.Use(log.ComponentMiddleware(log.ComponentAccount))
	acc.HandleFunc("", s.handleDashboard).Methods(http.MethodGet)
	acc.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	acc.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	acc.HandleFunc("/profile", s.handleUpdateProfile).Methods(http.MethodPut)
	acc.HandleFunc("/saved-cars", s.handleSaveCar).Methods(http.MethodPost)
	acc.HandleFunc("/saved-cars/{id:[0-9]+}", s.handleRemoveSavedCar).Methods(http.MethodDelete)

	api.Handle("/contact", log.ComponentMiddleware(log.ComponentAccount)(http.HandlerFunc(s.handleContact))).
		Methods(http.MethodPost)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limit := s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimited)

	var h http.Handler = r
	h = limit(h)
	h = headers.Middleware(h)
	h = s.detector.Middleware(h)
	h = s.tracer.Middleware(h)
	return h
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests, try again in a minute"})
}

// Shutdown drains connections and stops background sweepers.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
		err = s.Server.Shutdown(ctx)
		s.limiter.Stop()
	})
	return err
}

// ListenAndServe treats a graceful shutdown as success.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", "addr", s.Addr, log.FieldOperation, log.OpStartup)
	if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
