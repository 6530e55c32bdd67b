package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/intmarks/internal/app"
	"github.com/abhisek/intmarks/internal/export"
)

// runApp loads configuration, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	formatsVal, _ := cmd.Flags().GetString("formats")
	formats, err := export.ParseFormats(formatsVal)
	if err != nil {
		return fmt.Errorf("--formats: %w", err)
	}

	logger, closeLog, err := newLogger(cmd, cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("starting", "version", version, "subjects", cfg.Subjects,
		"zero_policy", cfg.ZeroPolicy.String(), "export_dir", cfg.ExportDir)

	return app.Run(app.Options{
		Config:   cfg,
		Logger:   logger,
		Exporter: export.New(cfg.ExportDir, logger).WithPDFFont(cfg.PDFFont),
		Formats:  formats,
	})
}
