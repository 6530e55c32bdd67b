package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/abhisek/intmarks/internal/marks"
	"github.com/abhisek/intmarks/internal/report"
)

// WriteCSV writes a header row and one row per record.
func WriteCSV(w io.Writer, records []marks.SubjectRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(report.SummaryHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Name,
			strconv.FormatFloat(r.CAT1, 'f', -1, 64),
			strconv.FormatFloat(r.CAT2, 'f', -1, 64),
			strconv.FormatFloat(r.CAT3, 'f', -1, 64),
			strconv.FormatFloat(r.Assignment, 'f', -1, 64),
			fmt.Sprintf("%.2f", r.Total),
			r.Status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %q: %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
