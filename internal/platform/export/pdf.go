package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"empform/internal/domain/employee"
	"empform/internal/platform/recordfile"
)

// SlipPDF renders a one-page registration slip carrying the same lines as the
// text record.
func SlipPDF(rec employee.Record) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Registro de empleado "+rec.ID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("REGISTRO DE EMPLEADO"), "B", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range recordfile.Lines(rec) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(50, 8, tr(line.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, tr(line.Value), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 8, tr("Registrado: "+recordfile.Stamp(rec.RegisteredAt)), "T", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render slip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
