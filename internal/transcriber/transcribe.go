package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Transcribe runs whisper.cpp over a 16kHz mono WAV and returns the
// plain transcript text.
func (t *implTranscriber) Transcribe(ctx context.Context, wavPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))

	t.logger.Info(ctx, "Starting transcription (%d threads, language %s): %s",
		t.cfg.Threads, t.cfg.Language, wavPath)

	// -m: Model path
	// -f: Input audio file
	// -otxt: Output plain text
	// -l: Spoken-language hint (prevents hallucination)
	// --prompt: Domain-specific keywords to improve accuracy
	// -bo: Best of 5 for better accuracy
	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", wavPath,
		"-otxt",
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if t.cfg.Prompt != "" {
		args = append(args, "--prompt", t.cfg.Prompt)
	}

	if _, err := t.executor.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	defer os.Remove(txtPath)

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		t.logger.Warn(ctx, "Transcription produced no text: %s", wavPath)
		return "", nil
	}

	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}
