package translator

import "context"

// Translator maps text between two languages given as ISO 639-1 codes.
type Translator interface {
	Translate(ctx context.Context, text, fromLang, toLang string) (string, error)
}
