package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Normalize converts audioPath to 16kHz mono WAV next to the input.
// This format is optimal for Whisper processing.
func (n *implNormalizer) Normalize(ctx context.Context, audioPath string) (string, error) {
	wavPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".wav"

	n.logger.Info(ctx, "Normalizing audio: %s", audioPath)

	// -vn: No video
	// -ar 16000: Sample rate 16kHz (optimal for Whisper)
	// -ac 1: Mono channel (Whisper works best with mono)
	// -c:a pcm_s16le: PCM 16-bit little-endian format
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := n.executor.Execute(ctx, n.binary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg normalize: %w", err)
	}

	n.logger.Info(ctx, "Audio normalized: %s", wavPath)
	return wavPath, nil
}
