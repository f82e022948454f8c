// Package server assembles the LogFlow HTTP server: Connect services,
// health and metrics endpoints, optional static files and the rules watcher.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/logflow/internal/automation"
	"github.com/mmynk/logflow/internal/cleaning"
	"github.com/mmynk/logflow/internal/collection"
	"github.com/mmynk/logflow/internal/config"
	"github.com/mmynk/logflow/internal/metrics"
	"github.com/mmynk/logflow/internal/middleware"
	"github.com/mmynk/logflow/internal/service"
	"github.com/mmynk/logflow/internal/storage/sqlite"
	"github.com/mmynk/logflow/pkg/api/apiconnect"
)

const (
	shutdownTimeout = 10 * time.Second
	signalBuffer    = 64
)

// Server owns every long-lived component of a running LogFlow instance.
type Server struct {
	cfg     config.Config
	store   *sqlite.SQLiteStore
	rules   *cleaning.Registry
	tracker *automation.Tracker
	metrics *metrics.Metrics
	handler http.Handler

	// signals carries completions produced inside the server (a saved
	// cleaning pass finishing the cleaning step) to the automation runner.
	signals chan automation.Signal
}

// New opens storage, loads cleaning rules and builds the HTTP handler.
func New(cfg config.Config) (*Server, error) {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	dbDesc := cfg.DBPath
	if dbDesc == "" {
		dbDesc = sqlite.MemoryPath
	}
	slog.Info("Storage initialized", "database", dbDesc)

	rules, err := loadRules(cfg.RulesPath)
	if err != nil {
		store.Close()
		return nil, err
	}

	m := metrics.New()
	tracker := automation.NewTracker(cfg.AutomationSteps, automation.WithObserver(m.AutomationObserver()))
	slog.Info("Automation pipeline configured", "steps", strings.Join(tracker.Steps(), ","))

	s := &Server{
		cfg:     cfg,
		store:   store,
		rules:   rules,
		tracker: tracker,
		metrics: m,
		signals: make(chan automation.Signal, signalBuffer),
	}
	handler, err := s.routes()
	if err != nil {
		store.Close()
		return nil, err
	}
	s.handler = handler
	return s, nil
}

func loadRules(path string) (*cleaning.Registry, error) {
	if path == "" {
		slog.Info("Using built-in cleaning rules")
		return cleaning.NewRegistry(cleaning.DefaultRules()), nil
	}
	rules, err := cleaning.NewFileRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load cleaning rules: %w", err)
	}
	slog.Info("Cleaning rules loaded", "path", path, "rules", len(rules.Rules()))
	return rules, nil
}

func (s *Server) routes() (http.Handler, error) {
	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	if s.cfg.MetricsEnabled {
		interceptors = append(interceptors, middleware.MetricsInterceptor(s.metrics))
	}
	opts := []connect.HandlerOption{connect.WithInterceptors(interceptors...)}

	mux := http.NewServeMux()

	romaneioSvc := service.NewRomaneioService(s.store, s.rules, collection.UUIDProvider{},
		service.WithCleaningObserver(s.onCleaning))
	romaneioPath, romaneioHandler := apiconnect.NewRomaneioServiceHandler(romaneioSvc, opts...)
	mux.Handle(romaneioPath, romaneioHandler)

	automationPath, automationHandler := apiconnect.NewAutomationServiceHandler(service.NewAutomationService(s.store, s.tracker), opts...)
	mux.Handle(automationPath, automationHandler)

	mux.HandleFunc("GET /healthz", s.healthz)
	if s.cfg.MetricsEnabled {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	if s.cfg.StaticPath != "" {
		static, err := staticHandler(s.cfg.StaticPath)
		if err != nil {
			return nil, err
		}
		mux.Handle("/", static)
	}

	return middleware.RequestLogging(middleware.CORS(mux)), nil
}

// onCleaning records cleaning metrics and, once a pass is saved, reports the
// cleaning step done for every job of that romaneio waiting on it.
func (s *Server) onCleaning(rep service.CleaningReport) {
	s.metrics.ObserveCleaning(rep.Result)
	if !rep.Saved {
		return
	}
	for _, job := range s.tracker.List(rep.RomaneioID) {
		if job.State.Phase != automation.PhaseRunning || job.CurrentStep() != automation.StepCleaning {
			continue
		}
		sig := automation.Signal{JobID: job.ID, Event: automation.StepDone{Step: automation.StepCleaning}}
		select {
		case s.signals <- sig:
		default:
			slog.Warn("Automation signal queue full, dropping signal", "job_id", job.ID)
		}
	}
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		slog.Error("Health check failed", "error", err)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// staticHandler serves the dashboard bundle, falling back to index.html for
// unknown paths.
func staticHandler(path string) (http.Handler, error) {
	staticDir, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/logflow.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	}), nil
}

// Handler returns the server's root handler without h2c wrapping.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. The rules watcher runs for the same lifetime when a rules file
// is configured.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	httpServer := &http.Server{
		Handler:           h2c.NewHandler(s.handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	var watcher *cleaning.Watcher
	if s.rules.Path() != "" {
		w, err := cleaning.NewWatcher(s.rules)
		if err != nil {
			ln.Close()
			return fmt.Errorf("failed to create rules watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			ln.Close()
			return fmt.Errorf("failed to start rules watcher: %w", err)
		}
		watcher = w
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case err, ok := <-w.Reloads:
					if !ok {
						return nil
					}
					s.metrics.ObserveReload(err)
				}
			}
		})
	}

	runner := automation.NewRunner(s.tracker)
	g.Go(func() error {
		if err := runner.Run(gctx, s.signals); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("Connect server starting", "address", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if watcher != nil {
		watcher.Stop()
	}
	return err
}

// Close releases storage.
func (s *Server) Close() error {
	return s.store.Close()
}
