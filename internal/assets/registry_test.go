package assets

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/voice-bridge/internal/logger"
)

func writeAsset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asset.mp3")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSingleUseDownload(t *testing.T) {
	reg := New(time.Minute, logger.New("error"))
	path := writeAsset(t, "audio-bytes")

	id, err := reg.Put(path, "translated.mp3", "audio/mpeg")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	dl, err := reg.Open(id)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if dl.Asset.Filename != "translated.mp3" || dl.Asset.ContentType != "audio/mpeg" {
		t.Errorf("asset metadata = %+v", dl.Asset)
	}

	data, err := io.ReadAll(dl.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("downloaded %q", data)
	}

	// File survives until the download is closed.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file deleted before retrieval completed: %v", err)
	}
	if err := dl.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file not deleted after retrieval")
	}

	// Second claim fails.
	if _, err := reg.Open(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Open() error = %v, want ErrNotFound", err)
	}
}

func TestOpenKeepsEntryWhenFileUnreadable(t *testing.T) {
	reg := New(time.Minute, logger.New("error")).(*implRegistry)
	path := writeAsset(t, "audio-bytes")

	id, err := reg.Put(path, "translated.mp3", "audio/mpeg")
	if err != nil {
		t.Fatal(err)
	}

	// Make the first claim fail at the filesystem, not the registry.
	if err := os.Rename(path, path+".away"); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Open(id); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("Open() error = %v, want a filesystem error", err)
	}

	// The entry must survive the failure: still claimable once the file
	// is back, and still visible to the TTL janitor.
	if _, ok := reg.entries[id]; !ok {
		t.Fatal("entry dropped after failed Open")
	}
	if err := os.Rename(path+".away", path); err != nil {
		t.Fatal(err)
	}

	dl, err := reg.Open(id)
	if err != nil {
		t.Fatalf("Open() after retry error = %v", err)
	}
	data, err := io.ReadAll(dl.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("downloaded %q", data)
	}
	dl.Close()
}

func TestOpenUnknown(t *testing.T) {
	reg := New(time.Minute, logger.New("error"))
	if _, err := reg.Open("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open() error = %v, want ErrNotFound", err)
	}
}

func TestSweepExpired(t *testing.T) {
	reg := New(time.Minute, logger.New("error")).(*implRegistry)
	path := writeAsset(t, "stale")

	id, err := reg.Put(path, "summary.pdf", "application/pdf")
	if err != nil {
		t.Fatal(err)
	}

	reg.sweep(context.Background(), time.Now().Add(2*time.Minute))

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expired asset file not deleted")
	}
	if _, err := reg.Open(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open() after sweep error = %v, want ErrNotFound", err)
	}
}
