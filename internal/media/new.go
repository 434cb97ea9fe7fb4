package media

import (
	"github.com/nguyentantai21042004/voice-bridge/internal/config"
	"github.com/nguyentantai21042004/voice-bridge/internal/logger"
	"github.com/nguyentantai21042004/voice-bridge/pkg/executor"
)

type implAcquirer struct {
	binary   string
	executor executor.Executor
	logger   logger.Logger
}

// NewAcquirer creates a yt-dlp backed Acquirer.
func NewAcquirer(cfg *config.Config, exec executor.Executor, log logger.Logger) Acquirer {
	return &implAcquirer{
		binary:   cfg.YtDlp.BinaryPath,
		executor: exec,
		logger:   log,
	}
}

type implNormalizer struct {
	binary   string
	executor executor.Executor
	logger   logger.Logger
}

// NewNormalizer creates an ffmpeg backed Normalizer.
func NewNormalizer(cfg *config.Config, exec executor.Executor, log logger.Logger) Normalizer {
	return &implNormalizer{
		binary:   cfg.FFmpeg.BinaryPath,
		executor: exec,
		logger:   log,
	}
}
