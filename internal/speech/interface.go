package speech

import "context"

// Synthesizer renders text into a speech audio file at destPath.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language, destPath string) error
}
