package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/intmarks/internal/export"
	"github.com/abhisek/intmarks/internal/intake"
	"github.com/abhisek/intmarks/internal/marks"
	"github.com/abhisek/intmarks/internal/report"
)

var errNoScores = errors.New("nothing to calculate: pass --input or at least one of --cat1, --cat2, --cat3, --assignment")

// scoreFlags maps each component to its flag name.
var scoreFlags = []struct {
	component marks.Component
	name      string
}{
	{marks.CAT1, "cat1"},
	{marks.CAT2, "cat2"},
	{marks.CAT3, "cat3"},
	{marks.Assignment, "assignment"},
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate internal marks without the interactive form",
	Long: `Calculate internal marks for one subject given on the command line, or for
every subject in a JSON batch file. A score flag that is not given means the
exam has not been taken yet.`,
	Example: `  intmarks calc --name Maths --cat1 40 --cat2 18
  intmarks calc --input subjects.json --export csv,pdf`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringP("input", "i", "", "JSON batch file (\"-\" reads stdin)")
	addSubjectFlags(calcCmd)
	calcCmd.Flags().String("export", "", "Also export the results: csv, pdf, sqlite, json")
}

// addSubjectFlags registers the single-subject flags on cmd.
func addSubjectFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Subject name")
	for _, f := range scoreFlags {
		cmd.Flags().Float64(f.name, 0, fmt.Sprintf("%s raw score (0-%.0f)", f.component.DisplayName(), f.component.RawMax()))
	}
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cmd, cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	inputs, err := calcInputs(cmd)
	if err != nil {
		return err
	}

	var formats []export.Format
	if v, _ := cmd.Flags().GetString("export"); v != "" {
		if formats, err = export.ParseFormats(v); err != nil {
			return fmt.Errorf("--export: %w", err)
		}
	}

	r := marks.Evaluate(inputs, cfg.ZeroPolicy)
	logger.Debug("evaluated", "report_id", r.ID, "subjects", len(r.Results),
		"passed", r.Passed, "failed", r.Failed, "zero_policy", cfg.ZeroPolicy.String())

	out := cmd.OutOrStdout()
	if err := report.RenderReport(out, r); err != nil {
		return err
	}
	if len(formats) == 0 {
		return nil
	}
	return exportReport(cmd.Context(), out, export.New(cfg.ExportDir, logger).WithPDFFont(cfg.PDFFont), r, formats)
}

// calcInputs reads the subjects from --input or from the subject flags.
func calcInputs(cmd *cobra.Command) ([]marks.SubjectInput, error) {
	flags := cmd.Flags()
	input, _ := flags.GetString("input")

	entry := intake.Entry{}
	entry.Name, _ = flags.GetString("name")
	anyScore := false
	for _, f := range scoreFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, _ := flags.GetFloat64(f.name)
		anyScore = true
		switch f.component {
		case marks.CAT1:
			entry.CAT1 = &v
		case marks.CAT2:
			entry.CAT2 = &v
		case marks.CAT3:
			entry.CAT3 = &v
		case marks.Assignment:
			entry.Assignment = &v
		}
	}

	switch {
	case input != "" && (anyScore || flags.Changed("name")):
		return nil, fmt.Errorf("use --input or the subject flags, not both")
	case input != "":
		return intake.LoadFile(input)
	case !anyScore:
		return nil, errNoScores
	}
	return intake.FromDocument(intake.Document{Subjects: []intake.Entry{entry}}, "flags")
}

// exportReport writes r in formats and prints the written paths.
func exportReport(ctx context.Context, w io.Writer, e *export.Exporter, r *marks.Report, formats []export.Format) error {
	if ctx == nil {
		ctx = context.Background()
	}
	paths, err := e.Export(ctx, r, formats)
	for _, p := range paths {
		fmt.Fprintln(w, "Saved", p)
	}
	return err
}
