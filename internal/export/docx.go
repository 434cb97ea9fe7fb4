package export

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

type implDocx struct{}

func (e *implDocx) Export(title, body, destPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		addStyledRun(doc.AddParagraph(""), trimmed, false, fontSize)
	}

	if err := doc.SaveTo(destPath); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func (e *implDocx) Extension() string {
	return "docx"
}

func (e *implDocx) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
