package pipeline

import (
	"context"
	"fmt"
)

// acquireAudio runs the acquisition stage into the run's temp dir.
func (r *run) acquireAudio(ctx context.Context, sourceURL string) (string, error) {
	r.publish("acquire", "started", "Downloading audio...")

	sctx, cancel := r.stageCtx(ctx)
	audioPath, err := r.o.deps.Acquirer.Acquire(sctx, sourceURL, r.tempDir)
	cancel()
	if err != nil {
		return "", r.fail(ctx, "acquire", KindAcquisition, err)
	}
	r.track(audioPath)
	r.publish("acquire", "completed", "")

	return audioPath, nil
}

// transcribeAudio runs normalization and transcription over an already
// acquired audio file and returns the transcript text. Both workflows
// share this prefix of the chain.
func (r *run) transcribeAudio(ctx context.Context, audioPath string) (string, error) {
	r.publish("normalize", "started", "Converting audio to WAV...")

	sctx, cancel := r.stageCtx(ctx)
	wavPath, err := r.o.deps.Normalizer.Normalize(sctx, audioPath)
	cancel()
	if err != nil {
		return "", r.fail(ctx, "normalize", KindNormalization, err)
	}
	r.track(wavPath)
	r.publish("normalize", "completed", "")

	r.publish("transcribe", "started", "Extracting text from audio...")

	sctx, cancel = r.stageCtx(ctx)
	text, err := r.o.deps.Transcriber.Transcribe(sctx, wavPath)
	cancel()
	if err != nil {
		return "", r.fail(ctx, "transcribe", KindTranscriptionService, err)
	}
	if text == "" {
		return "", r.fail(ctx, "transcribe", KindTranscriptionAmbiguous,
			fmt.Errorf("no speech detected in audio"))
	}
	r.publish("transcribe", "completed", "")

	return text, nil
}
