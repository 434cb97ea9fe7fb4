package export

// Exporter renders plain text into a paginated document file.
type Exporter interface {
	Export(title, body, destPath string) error
	// Extension is the file extension without the dot, e.g. "pdf".
	Extension() string
	ContentType() string
}
