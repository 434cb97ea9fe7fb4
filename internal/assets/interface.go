package assets

import (
	"context"
	"io"
	"time"
)

// Asset describes one downloadable artifact held by the registry.
type Asset struct {
	ID          string
	Filename    string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

// Download is an open, single-use asset stream. Closing it removes the
// underlying file: deletion happens only after retrieval, never when
// the asset is merely offered.
type Download struct {
	Asset  Asset
	Reader io.ReadCloser

	remove func()
}

// Close closes the stream and deletes the asset file.
func (d *Download) Close() error {
	err := d.Reader.Close()
	if d.remove != nil {
		d.remove()
	}
	return err
}

// Registry holds finished pipeline artifacts for retrieval by the
// browser. Every asset is single-use; unclaimed assets are reaped by
// the TTL janitor.
type Registry interface {
	// Put registers the file at path for download and returns the
	// asset id. The registry takes ownership of the file.
	Put(path, filename, contentType string) (string, error)

	// Open claims the asset for download and removes it from the
	// registry. ErrNotFound after the first claim.
	Open(id string) (*Download, error)

	// Run reaps expired assets until ctx is cancelled.
	Run(ctx context.Context)
}
