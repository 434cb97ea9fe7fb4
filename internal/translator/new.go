package translator

import (
	"sync"

	"github.com/nguyentantai21042004/voice-bridge/internal/logger"
)

type implTranslator struct {
	apiKeys []string
	logger  logger.Logger
	model   string

	// mu guards currentKey; the translator is shared by concurrent runs.
	mu         sync.Mutex
	currentKey int
}

// New creates a Translator that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model string, log logger.Logger) Translator {
	return &implTranslator{
		apiKeys: apiKeys,
		logger:  log,
		model:   model,
	}
}
