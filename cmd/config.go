package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configDir  = ".jetlink"
	envPrefix  = "JETLINK"
	configName = "config"
)

const (
	keyUserID            = "user.id"
	keyBackendURL        = "backend.url"
	keyBackendTimeout    = "backend.timeout"
	keyBackendRateLimit  = "backend.rate_limit"
	keyBackendBurst      = "backend.burst"
	keyBackendAPIKey     = "backend.api_key"
	keyBackendAPIKeyRef  = "backend.api_key_ref"
	keyChatTopKLocal     = "chat.topk_local"
	keyChatTopKGlobal    = "chat.topk_global"
	keyChatSTMMaxTurns   = "chat.stm_max_turns"
	keyChatReturnSources = "chat.return_sources"
	keyStoreDriver       = "store.driver"
	keyStorePath         = "store.path"
	keyLogLevel          = "log.level"
	keyRenderStyle       = "render.style"
	keyDrainTimeout      = "writeback.drain_timeout"
)

const (
	storeDriverTOML   = "toml"
	storeDriverSQLite = "sqlite"
	storeDriverFile   = "file"
)

// loadConfig reads ~/.jetlink/config.toml when present and layers JETLINK_*
// environment variables over it.
func loadConfig(homeDir string) (*viper.Viper, error) {
	cfg := viper.New()

	cfg.SetDefault(keyUserID, "test_user")
	cfg.SetDefault(keyBackendURL, "http://127.0.0.1:8000")
	cfg.SetDefault(keyBackendTimeout, 30*time.Second)
	cfg.SetDefault(keyBackendRateLimit, 0.0)
	cfg.SetDefault(keyBackendBurst, 1)
	cfg.SetDefault(keyBackendAPIKey, "")
	cfg.SetDefault(keyBackendAPIKeyRef, "")
	cfg.SetDefault(keyChatTopKLocal, 5)
	cfg.SetDefault(keyChatTopKGlobal, 5)
	cfg.SetDefault(keyChatSTMMaxTurns, 8)
	cfg.SetDefault(keyChatReturnSources, true)
	cfg.SetDefault(keyStoreDriver, storeDriverTOML)
	cfg.SetDefault(keyStorePath, "")
	cfg.SetDefault(keyLogLevel, "warn")
	cfg.SetDefault(keyRenderStyle, "dark")
	cfg.SetDefault(keyDrainTimeout, 5*time.Second)

	cfg.SetConfigName(configName)
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	if err := cfg.BindEnv(keyBackendAPIKey, envPrefix+"_API_KEY", envPrefix+"_BACKEND_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key env: %w", err)
	}

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return cfg, nil
}

// resolveStorePath fills in the driver specific default location.
func resolveStorePath(cfg *viper.Viper, homeDir string) string {
	if path := strings.TrimSpace(cfg.GetString(keyStorePath)); path != "" {
		return expandHome(path, homeDir)
	}

	switch cfg.GetString(keyStoreDriver) {
	case storeDriverSQLite:
		return filepath.Join(homeDir, configDir, "sessions.db")
	case storeDriverFile:
		return filepath.Join(homeDir, configDir, "sessions")
	default:
		return filepath.Join(homeDir, configDir, "sessions.toml")
	}
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
