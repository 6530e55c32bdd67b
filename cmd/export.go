package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/intmarks/internal/export"
	"github.com/abhisek/intmarks/internal/intake"
	"github.com/abhisek/intmarks/internal/marks"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the summary of a JSON batch file",
	Example: `  intmarks export --input subjects.json
  intmarks export --input subjects.json --format csv,pdf,sqlite --out reports/`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("input", "i", "", "JSON batch file (\"-\" reads stdin)")
	exportCmd.Flags().StringP("format", "f", "csv,pdf", "Comma-separated formats: csv, pdf, sqlite, json")
	exportCmd.Flags().StringP("out", "o", "", "Output directory (defaults to the export directory)")
	_ = exportCmd.MarkFlagRequired("input")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cmd, cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	formatVal, _ := cmd.Flags().GetString("format")
	formats, err := export.ParseFormats(formatVal)
	if err != nil {
		return fmt.Errorf("--format: %w", err)
	}

	dir := cfg.ExportDir
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		dir = out
	}

	input, _ := cmd.Flags().GetString("input")
	inputs, err := intake.LoadFile(input)
	if err != nil {
		return err
	}

	r := marks.Evaluate(inputs, cfg.ZeroPolicy)
	fmt.Fprintf(cmd.OutOrStdout(), "Passed: %d  Failed: %d\n", r.Passed, r.Failed)
	return exportReport(cmd.Context(), cmd.OutOrStdout(), export.New(dir, logger).WithPDFFont(cfg.PDFFont), r, formats)
}
