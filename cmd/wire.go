package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/adapters/backend/httpapi"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/adapters/credentials"
	filekv "github.com/Emirhan-Denizyol/llm-memory-assistant/internal/adapters/kv/file"
	sqlitekv "github.com/Emirhan-Denizyol/llm-memory-assistant/internal/adapters/kv/sqlite"
	tomlkv "github.com/Emirhan-Denizyol/llm-memory-assistant/internal/adapters/kv/toml"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/adapters/render/transcript"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/application"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

type app struct {
	logger       *log.Logger
	closeStore   func() error
	sessions     *application.SessionStore
	writeback    *application.MemoryWriteback
	orchestrator *application.ChatOrchestrator
	memory       *application.MemoryService
	render       transcript.RenderOptions
	drainTimeout time.Duration
	identity     string
	now          func() time.Time
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := loadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(os.Stderr, cfg.GetString(keyLogLevel))
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(cfg, homeDir)
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	gateway := &httpapi.Client{
		BaseURL:        cfg.GetString(keyBackendURL),
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.GetDuration(keyBackendTimeout),
		Credentials: credentials.NewChain(logger,
			credentials.Static(cfg.GetString(keyBackendAPIKey)),
			credentials.NewPass(cfg.GetString(keyBackendAPIKeyRef)),
		),
		Limiter: newLimiter(cfg.GetFloat64(keyBackendRateLimit), cfg.GetInt(keyBackendBurst)),
	}

	clock := ports.SystemClock{}
	sessions := application.NewSessionStore(store, clock, logger)
	writeback := application.NewMemoryWriteback(gateway, logger)
	orchestrator := application.NewChatOrchestrator(sessions, gateway, writeback, clock, application.ChatOptions{
		TopKLocal:     cfg.GetInt(keyChatTopKLocal),
		TopKGlobal:    cfg.GetInt(keyChatTopKGlobal),
		STMMaxTurns:   cfg.GetInt(keyChatSTMMaxTurns),
		ReturnSources: cfg.GetBool(keyChatReturnSources),
	}, logger)

	return &app{
		logger:       logger,
		closeStore:   closeStore,
		sessions:     sessions,
		writeback:    writeback,
		orchestrator: orchestrator,
		memory:       application.NewMemoryService(gateway),
		render:       transcript.RenderOptions{Style: cfg.GetString(keyRenderStyle), Width: transcript.DefaultWidth},
		drainTimeout: cfg.GetDuration(keyDrainTimeout),
		identity:     cfg.GetString(keyUserID),
		now:          time.Now,
	}, nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	return log.NewWithOptions(w, log.Options{
		Prefix: "jetlink",
		Level:  parsed,
	}), nil
}

func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

func openStore(cfg *viper.Viper, homeDir string) (ports.KeyValueStore, func() error, error) {
	path := resolveStorePath(cfg, homeDir)
	noop := func() error { return nil }

	switch driver := cfg.GetString(keyStoreDriver); driver {
	case storeDriverTOML, "":
		storeCfg := viper.New()
		storeCfg.Set(tomlkv.StorePathKey, path)
		store, err := tomlkv.NewStore(storeCfg)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	case storeDriverFile:
		return filekv.NewStore(path), noop, nil
	case storeDriverSQLite:
		store, err := sqlitekv.Open(context.Background(), path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// shutdown waits a bounded time for detached memory writes, then releases
// the store.
func (a *app) shutdown(ctx context.Context) error {
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.drainTimeout)
	defer cancel()

	if err := a.writeback.Drain(drainCtx); err != nil {
		a.logger.Warn("abandoning in-flight memory writeback", "err", err)
	}

	if err := a.closeStore(); err != nil {
		return fmt.Errorf("close session store: %w", err)
	}
	return nil
}
