// Package seed parses seed command flags and installs a content pack
// into storage as the active pack.
package seed

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/verdantworks/growline/internal/content"
	entrypoint "github.com/verdantworks/growline/internal/platform/cmd"
	"github.com/verdantworks/growline/internal/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"GROWLINE_DB_PATH" envDefault:"growline.db"`
	File   string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database file")
	fs.StringVar(&cfg.File, "file", "", "Content pack YAML file (default: embedded pack)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run validates the pack document and writes it under the active name.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(context.Context) error {
		raw, source, err := loadPack(cfg.File)
		if err != nil {
			return err
		}

		pack, err := content.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", source, err)
		}
		if err := pack.Validate(); err != nil {
			return fmt.Errorf("validate %s: %w", source, err)
		}

		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer store.Close()

		if err := store.PutContentPack(ctx, content.ActivePackName, raw, time.Now().UTC()); err != nil {
			return fmt.Errorf("store content pack: %w", err)
		}

		fmt.Printf("seeded %q content pack from %s into %s\n", content.ActivePackName, source, cfg.DBPath)
		return nil
	})
}

func loadPack(file string) ([]byte, string, error) {
	if file == "" {
		return content.DefaultRaw(), "embedded pack", nil
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, "", fmt.Errorf("read pack file: %w", err)
	}
	return raw, file, nil
}
