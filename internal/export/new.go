package export

import "fmt"

// New returns the Exporter for the configured format ("pdf" or "docx").
func New(format string) (Exporter, error) {
	switch format {
	case "pdf":
		return &implPDF{}, nil
	case "docx":
		return &implDocx{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
