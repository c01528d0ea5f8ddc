// Package progression parses progression command flags and starts the
// HTTP runtime.
package progression

import (
	"context"
	"flag"

	"github.com/verdantworks/growline/internal/app/server"
	entrypoint "github.com/verdantworks/growline/internal/platform/cmd"
)

// Config holds progression command configuration.
type Config struct {
	Port   int    `env:"GROWLINE_PROGRESSION_PORT" envDefault:"8080"`
	Addr   string `env:"GROWLINE_PROGRESSION_ADDR"`
	DBPath string `env:"GROWLINE_DB_PATH" envDefault:"growline.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The progression server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The progression server listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database file")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the progression API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceProgression, func(context.Context) error {
		if cfg.Addr != "" {
			return server.RunWithAddr(ctx, cfg.Addr, cfg.DBPath)
		}
		return server.Run(ctx, cfg.Port, cfg.DBPath)
	})
}
