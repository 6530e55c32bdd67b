package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/intmarks/internal/config"
	"github.com/abhisek/intmarks/internal/logging"
	"github.com/abhisek/intmarks/internal/marks"
)

var rootCmd = &cobra.Command{
	Use:   "intmarks",
	Short: "Internal marks calculator",
	Long: `intmarks converts CAT and assignment scores to internal marks out of 40,
predicts whether each subject can still reach the pass mark of 24, and
suggests the scores needed in the exams that are still pending.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("zero-recorded", false, "Treat a CAT score of 0 as taken instead of pending (overrides INTMARKS_ZERO_POLICY)")
	rootCmd.PersistentFlags().String("export-dir", "", "Directory for exported files (overrides INTMARKS_EXPORT_DIR)")
	rootCmd.PersistentFlags().String("pdf-font", "", "TrueType font for PDF exports, needed for names outside Latin-1 (overrides INTMARKS_PDF_FONT)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output (to stderr for non-interactive commands)")

	rootCmd.Flags().Int("subjects", 0, "Number of subjects; skips the setup screen (overrides INTMARKS_SUBJECTS)")
	rootCmd.Flags().String("formats", "csv,pdf", "Formats written by the export action: csv, pdf, sqlite, json")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env and the environment, then applies flag overrides.
// Flags win over the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("subjects") {
		cfg.Subjects, _ = flags.GetInt("subjects")
	}
	if flags.Changed("export-dir") {
		cfg.ExportDir, _ = flags.GetString("export-dir")
	}
	if flags.Changed("pdf-font") {
		cfg.PDFFont, _ = flags.GetString("pdf-font")
	}
	if flags.Changed("zero-recorded") {
		cfg.ZeroPolicy = marks.ZeroPending
		if on, _ := flags.GetBool("zero-recorded"); on {
			cfg.ZeroPolicy = marks.ZeroRecorded
		}
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger for a command. Interactive commands never
// log to stderr because the TUI owns the terminal.
func newLogger(cmd *cobra.Command, cfg config.Config, interactive bool) (*slog.Logger, func() error, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, closeFn, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stderr: verbose && !interactive,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("set up logging: %w", err)
	}
	return logger, closeFn, nil
}
