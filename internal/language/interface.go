package language

// Detector infers the language of a text sample and returns its
// lowercase ISO 639-1 code.
type Detector interface {
	Detect(text string) (string, error)
}
