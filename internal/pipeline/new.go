package pipeline

import (
	"time"

	"github.com/nguyentantai21042004/voice-bridge/internal/assets"
	"github.com/nguyentantai21042004/voice-bridge/internal/config"
	"github.com/nguyentantai21042004/voice-bridge/internal/export"
	"github.com/nguyentantai21042004/voice-bridge/internal/history"
	"github.com/nguyentantai21042004/voice-bridge/internal/language"
	"github.com/nguyentantai21042004/voice-bridge/internal/logger"
	"github.com/nguyentantai21042004/voice-bridge/internal/media"
	"github.com/nguyentantai21042004/voice-bridge/internal/progress"
	"github.com/nguyentantai21042004/voice-bridge/internal/speech"
	"github.com/nguyentantai21042004/voice-bridge/internal/summarizer"
	"github.com/nguyentantai21042004/voice-bridge/internal/transcriber"
	"github.com/nguyentantai21042004/voice-bridge/internal/translator"
)

// Deps are the collaborators each stage delegates to.
type Deps struct {
	Acquirer    media.Acquirer
	Normalizer  media.Normalizer
	Transcriber transcriber.Transcriber
	Detector    language.Detector
	Translator  translator.Translator
	Synthesizer speech.Synthesizer
	Summarizer  summarizer.Summarizer
	Exporter    export.Exporter
	History     history.Store
	Registry    assets.Registry
	Publisher   progress.Publisher
}

type implOrchestrator struct {
	cfg          *config.Config
	deps         Deps
	logger       logger.Logger
	sem          *semaphore
	stageTimeout time.Duration
}

// New creates the Orchestrator. Runs are admitted through a counting
// semaphore sized by pipeline.max_concurrent.
func New(cfg *config.Config, deps Deps, log logger.Logger) Orchestrator {
	stageTimeout := time.Duration(cfg.Pipeline.StageTimeoutSeconds) * time.Second
	if stageTimeout <= 0 {
		stageTimeout = 5 * time.Minute
	}
	return &implOrchestrator{
		cfg:          cfg,
		deps:         deps,
		logger:       log,
		sem:          newSemaphore(cfg.Pipeline.MaxConcurrent),
		stageTimeout: stageTimeout,
	}
}
