// Command deckctl is an interactive terminal client for one persisted deck.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"deck-of-cards-go/internal/database"
	"deck-of-cards-go/internal/deck"
	"deck-of-cards-go/internal/logging"
	"deck-of-cards-go/internal/store"
	"deck-of-cards-go/internal/tui"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// historyLimitFromEnv reads DECK_HISTORY_LIMIT with the same rules as the
// server config.
func historyLimitFromEnv() (int, error) {
	v := strings.TrimSpace(os.Getenv("DECK_HISTORY_LIMIT"))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("missing/invalid env: DECK_HISTORY_LIMIT (non-negative integer)")
	}
	return n, nil
}

func main() {
	_ = godotenv.Load()

	historyDefault, err := historyLimitFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "deckctl:", err)
		os.Exit(1)
	}

	dbPath := flag.String("db", envOr("DATABASE_PATH", "deck.db"), "sqlite database path")
	memory := flag.Bool("memory", false, "keep state in memory only")
	key := flag.String("key", envOr("DECK_STATE_KEY", store.DefaultKey), "state record key")
	historyLimit := flag.Int("history-limit", historyDefault, "max undo depth (0 = unbounded)")
	logFile := flag.String("log-file", os.Getenv("DECKCTL_LOG_FILE"), "write logs to this file")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "info"), "debug|info|warn|error")
	flag.Parse()
	if *historyLimit < 0 {
		fmt.Fprintln(os.Stderr, "deckctl: -history-limit must be non-negative")
		os.Exit(2)
	}

	if err := run(*dbPath, *memory, *key, *historyLimit, *logFile, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "deckctl:", err)
		os.Exit(1)
	}
}

func run(dbPath string, memory bool, key string, historyLimit int, logFile, logLevel string) error {
	logger := zap.NewNop()
	if logFile != "" {
		l, err := logging.NewFile(logLevel, "json", logFile)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st deck.Store
	if memory {
		st = store.NewMemoryStore(key, logger)
	} else {
		db, err := database.OpenAndMigrate(ctx, dbPath, logger)
		if err != nil {
			return fmt.Errorf("db open/migrate: %w", err)
		}
		defer func() { _ = db.Close() }()
		st = store.NewSQLStore(db, key, logger)
	}

	engine, err := deck.New(ctx, st, deck.WithLogger(logger), deck.WithHistoryLimit(historyLimit))
	if err != nil {
		return err
	}
	svc := deck.NewService(engine)
	defer svc.Close()
	return tui.Run(ctx, svc)
}
