package transcriber

import "context"

// Transcriber converts a normalized waveform into text. An empty string
// with a nil error means the audio carried no intelligible speech.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string) (string, error)
}
