package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/atomicstack/storefront-account/internal/account"
	"github.com/atomicstack/storefront-account/internal/app"
	"github.com/atomicstack/storefront-account/internal/menu"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envEnvFile      = "STOREFRONT_ACCOUNT_ENV_FILE"
	envDataPath     = "STOREFRONT_ACCOUNT_DATA"
	envRole         = "STOREFRONT_ACCOUNT_ROLE"
	envSection      = "STOREFRONT_ACCOUNT_SECTION"
	envWidth        = "STOREFRONT_ACCOUNT_WIDTH"
	envHeight       = "STOREFRONT_ACCOUNT_HEIGHT"
	envCompactWidth = "STOREFRONT_ACCOUNT_COMPACT_WIDTH"
	envShowFooter   = "STOREFRONT_ACCOUNT_FOOTER"
	envVerbose      = "STOREFRONT_ACCOUNT_VERBOSE"
	envTrace        = "STOREFRONT_ACCOUNT_TRACE"
	envLogFile      = "STOREFRONT_ACCOUNT_LOG_FILE"
	envPoll         = "STOREFRONT_ACCOUNT_POLL"
	envTimeout      = "STOREFRONT_ACCOUNT_TIMEOUT"
	envDownloadDir  = "STOREFRONT_ACCOUNT_DOWNLOAD_DIR"
)

const (
	defaultEnvFile      = ".env"
	defaultCompactWidth = 72
	defaultPoll         = 5 * time.Second
	defaultTimeout      = 10 * time.Second
)

// Load parses configuration from CLI arguments, the environment and an
// optional .env file in the working directory.
func Load() (Config, error) {
	environ := os.Environ()
	if _, set := parseEnv(environ)[envEnvFile]; !set {
		merged, err := MergeDotenv(environ, defaultEnvFile)
		if err != nil {
			return Config{}, err
		}
		environ = merged
	}
	return LoadArgs(os.Args[1:], environ)
}

// LoadArgs allows tests to supply specific args/environment. When the
// environment names an env file, its values fill in unset variables.
func LoadArgs(args []string, environ []string) (Config, error) {
	if path, ok := parseEnv(environ)[envEnvFile]; ok && strings.TrimSpace(path) != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, errors.Wrapf(err, "env file %s", path)
		}
		merged, err := MergeDotenv(environ, path)
		if err != nil {
			return Config{}, err
		}
		environ = merged
	}
	env := parseEnv(environ)

	fs := flag.NewFlagSet("storefront-account", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	dataPath := fs.String("data", envOrDefault(env, envDataPath, ""), "path to a YAML account fixture (empty uses the built-in demo account)")
	role := fs.String("role", envOrDefault(env, envRole, ""), "override the role reported by the role service")
	section := fs.String("section", envOrDefault(env, envSection, string(menu.DefaultSection)), "section shown on startup")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	compactWidth := fs.Int("compact-width", envOrInt(env, envCompactWidth, defaultCompactWidth), "below this width the sidebar collapses behind a toggle")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	poll := fs.Duration("poll", envOrDuration(env, envPoll, defaultPoll), "interval between account service refreshes")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, defaultTimeout), "upper bound for a single service call (0 disables)")
	downloadDir := fs.String("download-dir", envOrDefault(env, envDownloadDir, ""), "directory downloaded invoices are written to (empty keeps them in memory)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *compactWidth < 0 {
		return Config{}, fmt.Errorf("compact-width must be >= 0 (got %d)", *compactWidth)
	}

	cfg := Config{
		App: app.Config{
			DataPath:       *dataPath,
			Role:           account.Role(strings.TrimSpace(*role)),
			Section:        menu.ParseSectionID(*section),
			Width:          *width,
			Height:         *height,
			CompactWidth:   *compactWidth,
			ShowFooter:     *footer,
			Verbose:        *verbose,
			PollInterval:   *poll,
			CommandTimeout: *timeout,
			DownloadDir:    *downloadDir,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"data":         *dataPath,
			"role":         *role,
			"section":      *section,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"compactWidth": strconv.Itoa(*compactWidth),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
			"poll":         poll.String(),
			"timeout":      timeout.String(),
			"downloadDir":  *downloadDir,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// MergeDotenv appends the values of a dotenv file to environ without
// overriding variables that are already set. A missing file is not an error.
func MergeDotenv(environ []string, path string) ([]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return environ, nil
		}
		return nil, errors.Wrapf(err, "read env file %s", path)
	}
	existing := parseEnv(environ)
	merged := append([]string(nil), environ...)
	for key, value := range values {
		if _, set := existing[key]; set {
			continue
		}
		merged = append(merged, key+"="+value)
	}
	return merged, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if _, ok := menu.BuildRegistry().Find(cfg.App.Section); !ok {
		return fmt.Errorf("unknown section %q", cfg.App.Section)
	}
	if cfg.App.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be > 0 (got %s)", cfg.App.PollInterval)
	}
	if cfg.App.CommandTimeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", cfg.App.CommandTimeout)
	}
	return nil
}
