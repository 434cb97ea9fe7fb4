package language

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

type implDetector struct {
	detector lingua.LanguageDetector
}

// New creates a statistical detector over all spoken languages. The
// model load is front-loaded here; Detect itself is cheap.
func New() Detector {
	return &implDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllSpokenLanguages().
			Build(),
	}
}

func (d *implDetector) Detect(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("cannot detect language of empty text")
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", fmt.Errorf("language could not be determined")
	}

	return strings.ToLower(lang.IsoCode639_1().String()), nil
}
