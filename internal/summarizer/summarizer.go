package summarizer

import (
	"regexp"
	"sort"
	"strings"
)

type implSummarizer struct{}

// New creates an extractive term-frequency summarizer. Sentences are
// scored by the mean frequency of their content words; the top-N are
// re-emitted in document order, so repeat runs on identical input give
// identical output.
func New() Summarizer {
	return &implSummarizer{}
}

var (
	reSentenceEnd = regexp.MustCompile(`([.!?]+)(\s+|$)`)
	reToken       = regexp.MustCompile(`[\p{L}\p{N}']+`)
)

func (s *implSummarizer) Summarize(text string, sentenceCount int) (string, error) {
	if sentenceCount <= 0 {
		sentenceCount = 3
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return "", nil
	}
	if len(sentences) <= sentenceCount {
		return strings.Join(sentences, " "), nil
	}

	freq := termFrequencies(sentences)

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, sentence := range sentences {
		ranked[i] = scored{index: i, score: sentenceScore(sentence, freq)}
	}

	// Highest score first; ties resolve to the earlier sentence so the
	// selection is stable.
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].index < ranked[b].index
	})

	selected := ranked[:sentenceCount]
	sort.Slice(selected, func(a, b int) bool {
		return selected[a].index < selected[b].index
	})

	parts := make([]string, len(selected))
	for i, sel := range selected {
		parts[i] = sentences[sel.index]
	}
	return strings.Join(parts, " "), nil
}

func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	marked := reSentenceEnd.ReplaceAllString(text, "$1\x00")
	var sentences []string
	for _, part := range strings.Split(marked, "\x00") {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

func termFrequencies(sentences []string) map[string]float64 {
	freq := make(map[string]float64)
	for _, sentence := range sentences {
		for _, token := range tokenize(sentence) {
			freq[token]++
		}
	}
	return freq
}

func sentenceScore(sentence string, freq map[string]float64) float64 {
	tokens := tokenize(sentence)
	if len(tokens) == 0 {
		return 0
	}

	var total float64
	for _, token := range tokens {
		total += freq[token]
	}
	return total / float64(len(tokens))
}

func tokenize(sentence string) []string {
	var tokens []string
	for _, raw := range reToken.FindAllString(strings.ToLower(sentence), -1) {
		if stopwords[raw] {
			continue
		}
		tokens = append(tokens, raw)
	}
	return tokens
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "he": true, "her": true, "his": true,
	"i": true, "in": true, "is": true, "it": true, "its": true, "of": true,
	"on": true, "or": true, "she": true, "so": true, "that": true,
	"the": true, "they": true, "this": true, "to": true, "was": true,
	"we": true, "were": true, "will": true, "with": true, "you": true,
}
