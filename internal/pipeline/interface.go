package pipeline

import "context"

// Orchestrator runs the two fixed multi-stage workflows. A run either
// completes fully (one appended history record, one retrievable asset)
// or aborts at its first failing stage with a *StageError; intermediate
// artifacts never outlive the run either way.
type Orchestrator interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error)
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResult, error)

	// SummarizeFile feeds a local audio file into the summarize chain,
	// skipping acquisition. Used by the drop-folder watcher; the
	// document lands in the output directory instead of the asset
	// registry.
	SummarizeFile(ctx context.Context, req SummarizeFileRequest) (*SummarizeFileResult, error)
}

type TranslateRequest struct {
	Username       string
	SourceURL      string
	TargetLanguage string
}

type TranslateResult struct {
	RunID            string
	DetectedLanguage string
	TranslatedText   string
	AssetID          string
}

type SummarizeRequest struct {
	Username      string
	SourceURL     string
	SentenceCount int
}

type SummarizeResult struct {
	RunID   string
	Summary string
	AssetID string
}

type SummarizeFileRequest struct {
	Username      string
	AudioPath     string
	SentenceCount int
}

type SummarizeFileResult struct {
	RunID        string
	Summary      string
	DocumentPath string
}
