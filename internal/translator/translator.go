package translator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const translatePrompt = `You are a professional translator. Translate the text below from %s to %s.
Return only the translated text, with no preamble, notes or markup.

---
%s
---`

// Translate sends the text to Gemini and returns the translation.
// Rotates API keys on 429 / quota errors.
func (t *implTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	if len(t.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API keys configured (set GEMINI_API_KEYS)")
	}

	prompt := fmt.Sprintf(translatePrompt, languageName(fromLang), languageName(toLang), text)

	attempts := len(t.apiKeys)
	var lastErr error

	for range attempts {
		keyIndex, key := t.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			t.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				t.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIndex+1)
				t.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var out string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					out += part.Text
				}
			}
			out = strings.TrimSpace(out)
			if out == "" {
				return "", fmt.Errorf("empty translation from Gemini")
			}
			return out, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// activeKey returns the index and value of the key in rotation.
func (t *implTranslator) activeKey() (int, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentKey, t.apiKeys[t.currentKey]
}

func (t *implTranslator) rotateKey() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentKey = (t.currentKey + 1) % len(t.apiKeys)
}

// languageName expands common ISO codes so the prompt reads naturally;
// unknown codes pass through as-is.
func languageName(code string) string {
	names := map[string]string{
		"en": "English",
		"fr": "French",
		"de": "German",
		"es": "Spanish",
		"it": "Italian",
		"pt": "Portuguese",
		"ru": "Russian",
		"ja": "Japanese",
		"ko": "Korean",
		"zh": "Chinese",
		"vi": "Vietnamese",
		"hi": "Hindi",
		"ar": "Arabic",
	}
	if name, ok := names[strings.ToLower(code)]; ok {
		return name
	}
	return code
}
