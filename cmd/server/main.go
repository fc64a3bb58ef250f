package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/boatfinance/internal/auth"
	"github.com/mmynk/boatfinance/internal/config"
	"github.com/mmynk/boatfinance/internal/finance"
	"github.com/mmynk/boatfinance/internal/httpapi"
	"github.com/mmynk/boatfinance/internal/middleware"
	"github.com/mmynk/boatfinance/internal/service"
	"github.com/mmynk/boatfinance/internal/storage"
	"github.com/mmynk/boatfinance/internal/storage/redisstore"
	"github.com/mmynk/boatfinance/internal/storage/sqlite"
	"github.com/mmynk/boatfinance/internal/tracing"
	"github.com/mmynk/boatfinance/pkg/api/apiconnect"
	"github.com/mmynk/boatfinance/pkg/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	shutdownTracing, err := tracing.Init(ctx, cfg.OTELServiceName, cfg.OTELEndpoint)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	manager := finance.NewManager(store, cfg.ShareBaseURL,
		finance.WithListLimits(cfg.DefaultListLimit, cfg.MaxListLimit),
	)

	interceptors := connect.WithInterceptors(
		middleware.RequestIDInterceptor(),
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()

	financePath, financeHandler := apiconnect.NewFinanceServiceHandler(service.NewFinanceService(manager), interceptors)
	mux.Handle(financePath, financeHandler)

	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, slog.Default())
	authPath, authHandler := apiconnect.NewAuthServiceHandler(authSvc, interceptors)
	mux.Handle(authPath, authHandler)

	mux.Handle(finance.SharePath, httpapi.NewRouter(manager))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	if cfg.StaticPath != "" {
		staticHandler, err := newStaticHandler(cfg.StaticPath)
		if err != nil {
			return err
		}
		mux.Handle("/", staticHandler)
	}

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting",
			"address", srv.Addr,
			"storage", cfg.StorageBackend,
			"share_base_url", cfg.ShareBaseURL,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		store, err := redisstore.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("init redis storage: %w", err)
		}
		slog.Info("Storage initialized", "backend", "redis", "addr", cfg.RedisAddr)
		return store, nil
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("init sqlite storage: %w", err)
		}
		slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.DBPath)
		return store, nil
	}
}

// newStaticHandler serves a frontend build, falling back to index.html for
// unknown paths.
func newStaticHandler(staticPath string) (http.Handler, error) {
	staticDir, err := filepath.Abs(staticPath)
	if err != nil {
		return nil, fmt.Errorf("resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/boatfinance.v1.") {
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

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Request-Id, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Request-Id, Error-Code, Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
