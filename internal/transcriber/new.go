package transcriber

import (
	"github.com/nguyentantai21042004/voice-bridge/internal/config"
	"github.com/nguyentantai21042004/voice-bridge/internal/logger"
	"github.com/nguyentantai21042004/voice-bridge/pkg/executor"
)

type implTranscriber struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a whisper.cpp backed Transcriber.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:      cfg.Whisper,
		executor: exec,
		logger:   log,
	}
}
