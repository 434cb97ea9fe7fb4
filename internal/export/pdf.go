package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

type implPDF struct{}

func (e *implPDF) Export(title, body, destPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 10, title, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, body, "", "L", false)

	if err := pdf.OutputFileAndClose(destPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (e *implPDF) Extension() string {
	return "pdf"
}

func (e *implPDF) ContentType() string {
	return "application/pdf"
}
