package media

import "context"

// Acquirer downloads the audio track of a remote video into destDir and
// returns the path of the stored file.
type Acquirer interface {
	Acquire(ctx context.Context, sourceURL, destDir string) (string, error)
}

// Normalizer converts an arbitrary audio container into 16kHz mono PCM
// WAV, the canonical input format for transcription.
type Normalizer interface {
	Normalize(ctx context.Context, audioPath string) (string, error)
}
