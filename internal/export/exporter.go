package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/intmarks/internal/intake"
	"github.com/abhisek/intmarks/internal/marks"
)

// Format is an export file format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatPDF    Format = "pdf"
	FormatSQLite Format = "sqlite"
	// FormatJSON writes the inputs as a batch document for replay with calc.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown export format")

// DefaultFormats are written when none are requested.
var DefaultFormats = []Format{FormatCSV, FormatPDF}

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	if f == FormatSQLite {
		return "db"
	}
	return string(f)
}

// ParseFormats parses a comma-separated list such as "csv,pdf".
// Duplicates are dropped; order is preserved.
func ParseFormats(s string) ([]Format, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultFormats, nil
	}
	seen := make(map[Format]bool)
	var out []Format
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		switch f {
		case FormatCSV, FormatPDF, FormatSQLite, FormatJSON:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Exporter writes reports into a directory.
type Exporter struct {
	dir     string
	logger  *slog.Logger
	now     func() time.Time
	pdfFont string
}

// New creates an Exporter writing into dir. A nil logger discards logs.
func New(dir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Exporter{dir: dir, logger: logger, now: time.Now}
}

// WithPDFFont sets the TrueType font file used for PDF text.
func (e *Exporter) WithPDFFont(path string) *Exporter {
	e.pdfFont = path
	return e
}

// Export writes r in each format and returns the written paths in order.
func (e *Exporter) Export(ctx context.Context, r *marks.Report, formats []Format) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	base := e.freeBase(formats)
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := filepath.Join(e.dir, base+"."+f.Ext())
		if err := e.write(ctx, path, r, f); err != nil {
			e.logger.Error("export failed", "format", string(f), "path", path, "error", err)
			return paths, fmt.Errorf("export %s: %w", f, err)
		}
		e.logger.Info("export written", "format", string(f), "path", path,
			"report_id", r.ID, "subjects", len(r.Results))
		paths = append(paths, path)
	}
	return paths, nil
}

// freeBase returns a file name stem, without extension, for which no file
// of the requested formats exists yet. Exports within the same second get
// a numeric suffix.
func (e *Exporter) freeBase(formats []Format) string {
	stamp := "intmarks-" + e.now().Format("20060102-150405")
	base := stamp
	for n := 2; e.taken(base, formats); n++ {
		base = fmt.Sprintf("%s-%d", stamp, n)
	}
	return base
}

func (e *Exporter) taken(base string, formats []Format) bool {
	for _, f := range formats {
		if _, err := os.Stat(filepath.Join(e.dir, base+"."+f.Ext())); err == nil {
			return true
		}
	}
	return false
}

func (e *Exporter) write(ctx context.Context, path string, r *marks.Report, f Format) error {
	switch f {
	case FormatSQLite:
		// Start from an empty file so stale tables never leak in.
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return WriteSQLite(ctx, path, r)
	case FormatCSV, FormatPDF, FormatJSON:
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		switch f {
		case FormatCSV:
			err = WriteCSV(file, r.Records())
		case FormatPDF:
			err = WritePDF(file, r, e.pdfFont)
		default:
			err = intake.WriteDocument(file, r.Inputs())
		}
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}
