package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{"pdf", "pdf", false},
		{"docx", "docx", false},
		{"epub", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exp, err := New(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err == nil && exp.Extension() != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", exp.Extension(), tt.wantExt)
			}
		})
	}
}

func TestExportWritesFile(t *testing.T) {
	for _, format := range []string{"pdf", "docx"} {
		t.Run(format, func(t *testing.T) {
			exp, err := New(format)
			if err != nil {
				t.Fatal(err)
			}

			dest := filepath.Join(t.TempDir(), "summary."+exp.Extension())
			if err := exp.Export("Video Summary", "First sentence.\nSecond sentence.", dest); err != nil {
				t.Fatalf("Export() error = %v", err)
			}

			info, err := os.Stat(dest)
			if err != nil {
				t.Fatalf("exported file missing: %v", err)
			}
			if info.Size() == 0 {
				t.Error("exported file is empty")
			}
		})
	}
}
