package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/voice-bridge/internal/history"
)

// Summarize runs the full summarize workflow:
// acquire -> normalize -> transcribe -> summarize -> export ->
// offer asset + append history record.
func (o *implOrchestrator) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResult, error) {
	if err := o.sem.acquire(ctx); err != nil {
		return nil, err
	}
	defer o.sem.release()

	r, err := o.newRun(ctx, req.Username, "summarize")
	if err != nil {
		return nil, err
	}
	defer r.cleanup(ctx)

	audioPath, err := r.acquireAudio(ctx, req.SourceURL)
	if err != nil {
		return nil, err
	}

	summary, docPath, err := r.summarizeAndExportWithCount(ctx, audioPath, req.SentenceCount)
	if err != nil {
		return nil, err
	}

	exporter := o.deps.Exporter
	assetID, err := o.deps.Registry.Put(docPath, "summary."+exporter.Extension(), exporter.ContentType())
	if err != nil {
		os.Remove(docPath)
		return nil, r.fail(ctx, "export", KindExport, err)
	}

	rec := history.NewSummary(req.SourceURL, summary)
	if err := o.deps.History.Append(ctx, req.Username, rec); err != nil {
		r.discardAsset(assetID)
		return nil, r.fail(ctx, "history", KindHistory, err)
	}

	r.publish("complete", "completed", "Summary ready for download.")
	o.logger.Info(ctx, "[%s] Summarize run completed (%d sentences)", r.id, r.sentenceCount(req.SentenceCount))

	return &SummarizeResult{
		RunID:   r.id,
		Summary: summary,
		AssetID: assetID,
	}, nil
}

// SummarizeFile enters the chain at normalization for a local audio
// file. The run takes the file into its temp dir first so the drop
// directory never holds half-consumed artifacts.
func (o *implOrchestrator) SummarizeFile(ctx context.Context, req SummarizeFileRequest) (*SummarizeFileResult, error) {
	if err := o.sem.acquire(ctx); err != nil {
		return nil, err
	}
	defer o.sem.release()

	r, err := o.newRun(ctx, req.Username, "summarize")
	if err != nil {
		return nil, err
	}
	defer r.cleanup(ctx)

	r.publish("intake", "started", "Taking in dropped audio...")
	audioPath, err := r.takeFile(req.AudioPath)
	if err != nil {
		return nil, r.fail(ctx, "intake", KindAcquisition, err)
	}
	r.track(audioPath)
	r.publish("intake", "completed", "")

	summary, docPath, err := r.summarizeAndExportWithCount(ctx, audioPath, req.SentenceCount)
	if err != nil {
		return nil, err
	}

	// The document stays in the output directory; only intermediates
	// are cleaned up.
	base := strings.TrimSuffix(filepath.Base(req.AudioPath), filepath.Ext(req.AudioPath))
	finalPath := filepath.Join(o.cfg.Paths.Output, base+"."+o.deps.Exporter.Extension())
	if err := os.Rename(docPath, finalPath); err != nil {
		return nil, r.fail(ctx, "export", KindExport, err)
	}

	rec := history.NewSummary("file://"+filepath.Base(req.AudioPath), summary)
	if err := o.deps.History.Append(ctx, req.Username, rec); err != nil {
		os.Remove(finalPath)
		return nil, r.fail(ctx, "history", KindHistory, err)
	}

	r.publish("complete", "completed", "Summary document written.")
	o.logger.Info(ctx, "[%s] Summarize run completed for dropped file: %s", r.id, finalPath)

	return &SummarizeFileResult{
		RunID:        r.id,
		Summary:      summary,
		DocumentPath: finalPath,
	}, nil
}

// summarizeAndExportWithCount runs the shared tail of both summarize
// entry points: transcribe, summarize, export. Returns the summary
// text and the rendered document path inside the output directory.
func (r *run) summarizeAndExportWithCount(ctx context.Context, audioPath string, sentenceCount int) (string, string, error) {
	o := r.o

	text, err := r.transcribeAudio(ctx, audioPath)
	if err != nil {
		return "", "", err
	}

	count := r.sentenceCount(sentenceCount)
	r.publish("summarize", "started", fmt.Sprintf("Summarizing to %d sentences...", count))
	summary, err := o.deps.Summarizer.Summarize(text, count)
	if err != nil {
		return "", "", r.fail(ctx, "summarize", KindSummarizationEmpty, err)
	}
	if summary == "" {
		return "", "", r.fail(ctx, "summarize", KindSummarizationEmpty,
			fmt.Errorf("summarizer produced no sentences"))
	}
	r.publish("summarize", "completed", "")

	r.publish("export", "started", "Rendering summary document...")
	if err := os.MkdirAll(o.cfg.Paths.Output, 0755); err != nil {
		return "", "", r.fail(ctx, "export", KindExport, err)
	}
	docPath := filepath.Join(o.cfg.Paths.Output, r.id+"."+o.deps.Exporter.Extension())
	if err := o.deps.Exporter.Export("Audio Summary", summary, docPath); err != nil {
		return "", "", r.fail(ctx, "export", KindExport, err)
	}
	r.publish("export", "completed", "")

	return summary, docPath, nil
}

func (r *run) sentenceCount(requested int) int {
	if requested > 0 {
		return requested
	}
	return 3
}

// takeFile moves a dropped file into the run's temp dir, falling back
// to copy+delete across filesystems.
func (r *run) takeFile(path string) (string, error) {
	dest := filepath.Join(r.tempDir, filepath.Base(path))
	if err := os.Rename(path, dest); err == nil {
		return dest, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read dropped file: %w", err)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", fmt.Errorf("copy dropped file: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("remove dropped file: %w", err)
	}
	return dest, nil
}
