package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/voice-bridge/internal/history"
)

// Translate runs the full translate workflow:
// acquire -> normalize -> transcribe -> detect -> translate ->
// synthesize -> offer asset + append history record.
func (o *implOrchestrator) Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error) {
	if err := o.sem.acquire(ctx); err != nil {
		return nil, err
	}
	defer o.sem.release()

	r, err := o.newRun(ctx, req.Username, "translate")
	if err != nil {
		return nil, err
	}
	defer r.cleanup(ctx)

	audioPath, err := r.acquireAudio(ctx, req.SourceURL)
	if err != nil {
		return nil, err
	}

	text, err := r.transcribeAudio(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	r.publish("detect", "started", "Detecting language...")
	fromLang, err := o.deps.Detector.Detect(text)
	if err != nil {
		return nil, r.fail(ctx, "detect", KindDetection, err)
	}
	r.publish("detect", "completed", fmt.Sprintf("Detected language: %s", fromLang))

	r.publish("translate", "started", fmt.Sprintf("Translating to %s...", req.TargetLanguage))
	sctx, cancel := r.stageCtx(ctx)
	translated, err := o.deps.Translator.Translate(sctx, text, fromLang, req.TargetLanguage)
	cancel()
	if err != nil {
		return nil, r.fail(ctx, "translate", KindTranslation, err)
	}
	r.publish("translate", "completed", "")

	r.publish("synthesize", "started", "Generating translated audio...")
	if err := os.MkdirAll(o.cfg.Paths.Output, 0755); err != nil {
		return nil, r.fail(ctx, "synthesize", KindSynthesis, err)
	}
	assetPath := filepath.Join(o.cfg.Paths.Output, r.id+".mp3")

	sctx, cancel = r.stageCtx(ctx)
	err = o.deps.Synthesizer.Synthesize(sctx, translated, req.TargetLanguage, assetPath)
	cancel()
	if err != nil {
		return nil, r.fail(ctx, "synthesize", KindSynthesis, err)
	}
	r.publish("synthesize", "completed", "")

	// Ownership of the synthesized file passes to the registry, which
	// deletes it only after retrieval or TTL expiry.
	assetID, err := o.deps.Registry.Put(assetPath, "translated_audio.mp3", "audio/mpeg")
	if err != nil {
		os.Remove(assetPath)
		return nil, r.fail(ctx, "synthesize", KindSynthesis, err)
	}

	rec := history.NewTranslation(req.SourceURL, translated)
	if err := o.deps.History.Append(ctx, req.Username, rec); err != nil {
		r.discardAsset(assetID)
		return nil, r.fail(ctx, "history", KindHistory, err)
	}

	r.publish("complete", "completed", "Translation ready for download.")
	o.logger.Info(ctx, "[%s] Translate run completed (%s -> %s)", r.id, fromLang, req.TargetLanguage)

	return &TranslateResult{
		RunID:            r.id,
		DetectedLanguage: fromLang,
		TranslatedText:   translated,
		AssetID:          assetID,
	}, nil
}

// discardAsset reclaims an offered asset when a later step fails, so
// no download outlives an aborted run.
func (r *run) discardAsset(assetID string) {
	dl, err := r.o.deps.Registry.Open(assetID)
	if err != nil {
		return
	}
	dl.Close()
}
