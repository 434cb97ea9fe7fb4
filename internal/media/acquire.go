package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Acquire downloads the best audio stream of sourceURL as mp3 into
// destDir. yt-dlp runs with destDir as its working directory so the
// output template stays relative.
func (a *implAcquirer) Acquire(ctx context.Context, sourceURL, destDir string) (string, error) {
	a.logger.Info(ctx, "Downloading audio: %s", sourceURL)

	args := []string{
		"-f", "bestaudio",
		"-x",
		"--audio-format", "mp3",
		"--no-playlist",
		"-o", "source.%(ext)s",
		sourceURL,
	}

	if _, err := a.executor.ExecuteInDir(ctx, destDir, a.binary, args...); err != nil {
		return "", fmt.Errorf("yt-dlp download: %w", err)
	}

	audioPath := filepath.Join(destDir, "source.mp3")
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("yt-dlp produced no audio file: %w", err)
	}

	a.logger.Info(ctx, "Audio downloaded: %s", audioPath)
	return audioPath, nil
}
