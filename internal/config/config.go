package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/intmarks/internal/intake"
	"github.com/abhisek/intmarks/internal/marks"
)

// Config holds runtime configuration.
type Config struct {
	// Subjects is the number of subjects in the form. 0 means ask.
	Subjects int

	// ExportDir is where exports are written.
	ExportDir string

	// ZeroPolicy decides whether a CAT scored 0 counts as taken.
	ZeroPolicy marks.ZeroPolicy

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// PDFFont is a TrueType font file for PDF exports. Empty means the
	// built-in Helvetica, which covers only cp1252.
	PDFFont string

	// LogFile receives structured logs. Empty means stderr or nowhere,
	// depending on the command.
	LogFile string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ExportDir:  ".",
		ZeroPolicy: marks.ZeroPending,
		LogLevel:   "info",
	}
}

// LoadDotEnv loads variables from path into the environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("INTMARKS_SUBJECTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("INTMARKS_SUBJECTS: %w", err)
		}
		cfg.Subjects = n
	}
	if v := os.Getenv("INTMARKS_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("INTMARKS_ZERO_POLICY"); v != "" {
		p, err := marks.ParseZeroPolicy(v)
		if err != nil {
			return cfg, fmt.Errorf("INTMARKS_ZERO_POLICY: %w", err)
		}
		cfg.ZeroPolicy = p
	}
	if v := os.Getenv("INTMARKS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.PDFFont = os.Getenv("INTMARKS_PDF_FONT")
	cfg.LogFile = os.Getenv("INTMARKS_LOG_FILE")

	return cfg, cfg.Validate()
}

// Validate checks that every field is in range.
func (c Config) Validate() error {
	if c.Subjects != 0 {
		if err := intake.CheckCount(c.Subjects); err != nil {
			return fmt.Errorf("number of subjects: %w", err)
		}
	}
	if c.ExportDir == "" {
		return fmt.Errorf("export directory must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.PDFFont != "" {
		if _, err := os.Stat(c.PDFFont); err != nil {
			return fmt.Errorf("pdf font: %w", err)
		}
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
