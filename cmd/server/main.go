package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deck-of-cards-go/internal/config"
	"deck-of-cards-go/internal/database"
	"deck-of-cards-go/internal/deck"
	"deck-of-cards-go/internal/handlers"
	"deck-of-cards-go/internal/logging"
	"deck-of-cards-go/internal/middleware"
	"deck-of-cards-go/internal/store"
	"deck-of-cards-go/internal/tracing"
	"deck-of-cards-go/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const serviceName = "deck-of-cards"

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		// No logger yet: config decides its level and format.
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	shutdownTracing, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName: serviceName,
		Environment: cfg.AppEnv,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("tracing init", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	db, err := database.OpenAndMigrate(ctx, cfg.DatabasePath, logger)
	if err != nil {
		logger.Fatal("db open/migrate", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("db close error", zap.Error(err))
		}
	}()

	engine, err := deck.New(ctx, store.NewSQLStore(db, cfg.DeckStateKey, logger),
		deck.WithLogger(logger),
		deck.WithHistoryLimit(cfg.DeckHistoryLimit),
	)
	if err != nil {
		logger.Fatal("deck state load", zap.Error(err))
	}
	svc := deck.NewService(engine)
	// Runs before db.Close: flush the last state while the db is open.
	defer svc.Close()

	hubRef := websocket.NewHubRef(websocket.NewHub(logger))
	go runHub(hubRef, logger)

	handlers.SetLogger(logger)
	handlers.SetWebSocketOriginPolicy(cfg.IsDev(), cfg.DevWebSocketsAllowAll, cfg.WSAllowedOrigins)
	unsubscribe := handlers.BroadcastDeckEvents(svc, hubRef.Get)
	defer unsubscribe()

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middleware.DevCORS(cfg))
	handlers.RegisterHealthRoutes(r)

	api := r.Group("/api")
	handlers.RegisterAuthRoutes(api, cfg)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(cfg))
	handlers.RegisterDeckRoutes(protected, svc)

	// WebSocket endpoint is auth-gated via cookie, Authorization header or (opt-in) query token.
	r.GET("/ws", handlers.WebSocketHandler(hubRef.Get, svc, cfg))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	if h, ok := hubRef.Get(); ok {
		h.Stop()
	}

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
}

// runHub runs the current hub and swaps in a fresh one if Run panics. It
// returns once a hub exits normally (Stop was called).
func runHub(ref *websocket.HubRef, logger *zap.Logger) {
	for {
		current, ok := ref.Get()
		if !ok {
			ref.Set(websocket.NewHub(logger))
			continue
		}
		panicked := false
		func() {
			defer func() {
				if r := recover(); r != nil {
					panicked = true
					logger.Error("hub.Run panic", zap.Any("panic", r), zap.Stack("stack"))
				}
			}()
			current.Run()
		}()
		if !panicked {
			return
		}
		// Make Register/Unregister/Broadcast on the dead hub no-ops.
		current.Stop()
		ref.Set(websocket.NewHub(logger))
		time.Sleep(1 * time.Second)
	}
}
