package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/intmarks/internal/marks"
	"github.com/abhisek/intmarks/internal/report"
)

const (
	pdfRowHeight   = 8.0
	pdfBottomSpace = 20.0
	pdfUTF8Family  = "body"
)

// pdfColumnWidths matches report.SummaryHeader, in mm (A4 portrait
// usable width is 190).
var pdfColumnWidths = []float64{50, 20, 20, 20, 25, 35, 20}

// WritePDF writes the summary as a paginated A4 document. fontPath names a
// TrueType font used for all text; when empty, the built-in Helvetica is
// used and characters outside cp1252 print as '.'.
func WritePDF(w io.Writer, r *marks.Report, fontPath string) error {
	var font []byte
	if fontPath != "" {
		var err error
		if font, err = os.ReadFile(fontPath); err != nil {
			return fmt.Errorf("read pdf font: %w", err)
		}
	}
	pdf := buildPDF(r, font)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// buildPDF lays out the document: a title block on the first page and the
// column header repeated on every page.
func buildPDF(r *marks.Report, font []byte) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Internal Marks Summary", true)
	pdf.SetCreator("intmarks", true)
	pdf.SetAutoPageBreak(false, pdfBottomSpace)
	pdf.AliasNbPages("")

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if font != nil {
		// One face serves every style.
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8FontFromBytes(pdfUTF8Family, style, font)
		}
		family = pdfUTF8Family
		tr = func(s string) string { return s }
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(family, "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 10, "Internal Marks Summary (Out of 40)", "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, fmt.Sprintf("Report %s  generated %s", r.ID, r.GeneratedAt.Format("2006-01-02 15:04 MST")),
		"", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Pass mark %.0f/%.0f   Passed %d   Failed %d",
		marks.PassMark, marks.MaxTotal, r.Passed, r.Failed), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	header := func() {
		pdf.SetFont(family, "B", 10)
		pdf.SetFillColor(30, 41, 59)
		pdf.SetTextColor(248, 250, 252)
		for i, h := range report.SummaryHeader {
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	for i, rec := range r.Records() {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfBottomSpace {
			pdf.AddPage()
			header()
		}

		pdf.SetFont(family, "", 10)
		pdf.SetTextColor(15, 23, 42)
		if i%2 == 1 {
			pdf.SetFillColor(241, 245, 249)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		cells := report.SummaryRow(rec)
		for j, cell := range cells {
			align := "R"
			if j == 0 {
				align = "L"
				cell = tr(cell)
			}
			if j == len(cells)-1 {
				align = "C"
				if rec.Passed() {
					pdf.SetTextColor(22, 163, 74)
				} else {
					pdf.SetTextColor(225, 29, 72)
				}
			}
			pdf.CellFormat(pdfColumnWidths[j], pdfRowHeight, cell, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf
}
