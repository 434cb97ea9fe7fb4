package summarizer

// Summarizer reduces a text body to a fixed number of representative
// sentences. Identical input must yield identical output.
type Summarizer interface {
	Summarize(text string, sentenceCount int) (string, error)
}
