package speech

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nguyentantai21042004/voice-bridge/internal/config"
	"github.com/nguyentantai21042004/voice-bridge/internal/logger"
)

type implSynthesizer struct {
	client *openai.Client
	model  string
	voice  string
	logger logger.Logger
}

// New creates an OpenAI text-to-speech Synthesizer.
func New(cfg *config.Config, log logger.Logger) Synthesizer {
	client := openai.NewClient(option.WithAPIKey(cfg.OpenAI.APIKey))
	return &implSynthesizer{
		client: &client,
		model:  cfg.OpenAI.Model,
		voice:  cfg.OpenAI.Voice,
		logger: log,
	}
}
