package speech

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/openai/openai-go"
)

// Synthesize streams the rendered mp3 to destPath. The voice is
// multilingual; language is informational only.
func (s *implSynthesizer) Synthesize(ctx context.Context, text, language, destPath string) error {
	s.logger.Info(ctx, "Synthesizing speech (%s, %d characters)", language, len(text))

	res, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return fmt.Errorf("openai speech: %w", err)
	}
	defer res.Body.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}

	if _, err := io.Copy(out, res.Body); err != nil {
		out.Close()
		os.Remove(destPath)
		return fmt.Errorf("write audio file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("close audio file: %w", err)
	}

	s.logger.Info(ctx, "Speech synthesized: %s", destPath)
	return nil
}
