package game

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// UI modes.
const (
	UITerminal = "tui"
	UIText     = "text"
)

// Config holds session configuration. Environment variables provide the
// defaults and command-line flags override them.
type Config struct {
	// Seed for board generation, monster picks and dodge rolls.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"VALOR_SEED" envDefault:"0"`

	// SpawnInterval is the number of rounds between monster waves.
	SpawnInterval int `env:"VALOR_SPAWN_INTERVAL" envDefault:"8"`

	// Heroes preselects roster entries (1-based), skipping the selection prompt.
	Heroes []int `env:"VALOR_HEROES" envSeparator:","`

	UI        string `env:"VALOR_UI" envDefault:"tui"`
	LogLevel  string `env:"VALOR_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"VALOR_LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"VALOR_LOG_FILE" envDefault:"valor.log"`
	Telemetry bool   `env:"VALOR_TELEMETRY" envDefault:"false"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseConfig loads environment defaults, then applies flags from args.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return Config{}, err
	}

	heroes := joinInts(cfg.Heroes)
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = random)")
	fs.IntVar(&cfg.SpawnInterval, "spawn-interval", cfg.SpawnInterval, "rounds between monster waves")
	fs.StringVar(&heroes, "heroes", heroes, "comma-separated roster numbers to field, e.g. 1,5,8")
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "interface: tui or text")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file path (empty = stderr)")
	fs.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "export traces over OTLP")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Heroes, err = splitInts(heroes); err != nil {
		return Config{}, fmt.Errorf("parse -heroes: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.SpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("spawn interval must be positive, got %d", c.SpawnInterval))
	}
	if c.UI != UITerminal && c.UI != UIText {
		errs = append(errs, fmt.Errorf("unknown ui %q", c.UI))
	}
	for _, n := range c.Heroes {
		if n < 1 {
			errs = append(errs, fmt.Errorf("hero number %d must be at least 1", n))
		}
	}
	return errors.Join(errs...)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
