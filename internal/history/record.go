package history

import (
	"fmt"
	"time"
)

// Record is the persisted outcome of one successful pipeline run.
// Exactly one of TranslatedText or Summary is set, never both.
type Record struct {
	SourceURL      string    `json:"video_url"`
	TranslatedText string    `json:"translated_text,omitempty"`
	Summary        string    `json:"summary,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewTranslation builds a record for a completed translate run.
func NewTranslation(sourceURL, translatedText string) Record {
	return Record{
		SourceURL:      sourceURL,
		TranslatedText: translatedText,
		CreatedAt:      time.Now().UTC(),
	}
}

// NewSummary builds a record for a completed summarize run.
func NewSummary(sourceURL, summary string) Record {
	return Record{
		SourceURL:      sourceURL,
		Summary:        summary,
		CreatedAt:      time.Now().UTC(),
	}
}

// Validate enforces the record invariants before persistence.
func (r Record) Validate() error {
	if r.SourceURL == "" {
		return fmt.Errorf("record has no source url")
	}
	hasTranslation := r.TranslatedText != ""
	hasSummary := r.Summary != ""
	if hasTranslation == hasSummary {
		return fmt.Errorf("record must carry exactly one of translated_text or summary")
	}
	return nil
}
