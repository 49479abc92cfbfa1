package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/nikbrunner/collector/internal/model"
	"github.com/nikbrunner/collector/internal/storage"
	"github.com/nikbrunner/collector/internal/tree"
)

// Configuration keys.
const (
	keyStorageDriver     = "storage.driver"
	keyStoragePath       = "storage.path"
	keyDefaultFolderName = "folders.default_name"
	keyIndent            = "display.indent"
	keyLogLevel          = "log.level"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyStorageDriver, storage.DriverSQLite)
	v.SetDefault(keyDefaultFolderName, model.DefaultFolderName)
	v.SetDefault(keyIndent, tree.DefaultIndent)
	v.SetDefault(keyLogLevel, "warn")
}

// InitConfig initializes viper configuration. A .env file in the working
// directory is loaded first so its variables take part in the environment
// lookup. A missing default config file is not an error; a missing
// explicit one is.
func InitConfig(v *viper.Viper, cfgFile string) error {
	// Silently ignore a missing .env
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("get home directory: %w", err)
		}

		// Search ~/.config/collector/config.yaml
		v.AddConfigPath(filepath.Join(home, ".config", "collector"))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	// Environment variables: COLLECTOR_STORAGE_PATH, COLLECTOR_LOG_LEVEL, ...
	v.SetEnvPrefix("COLLECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// storageConfig returns the backend selection from configuration.
func storageConfig(v *viper.Viper) storage.Config {
	return storage.Config{
		Driver: v.GetString(keyStorageDriver),
		Path:   v.GetString(keyStoragePath),
	}
}

// NewLogger returns a text logger writing to w at the named level
// (debug, info, warn or error).
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
