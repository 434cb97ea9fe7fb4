package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
				},
				Paths: PathsConfig{
					CredentialsFile: "data/users.json",
					HistoryDir:      "data/history",
				},
			},
			wantErr: false,
		},
		{
			name: "missing model path",
			config: Config{
				Whisper: WhisperConfig{
					BinaryPath: "./whisper",
				},
				Paths: PathsConfig{
					CredentialsFile: "data/users.json",
					HistoryDir:      "data/history",
				},
			},
			wantErr: true,
		},
		{
			name: "missing history dir",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
				},
				Paths: PathsConfig{
					CredentialsFile: "data/users.json",
				},
			},
			wantErr: true,
		},
		{
			name: "bad export format",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
				},
				Paths: PathsConfig{
					CredentialsFile: "data/users.json",
					HistoryDir:      "data/history",
				},
				Export: ExportConfig{Format: "epub"},
			},
			wantErr: true,
		},
		{
			name: "watch enabled without dir",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
				},
				Paths: PathsConfig{
					CredentialsFile: "data/users.json",
					HistoryDir:      "data/history",
				},
				Watch: WatchConfig{Enabled: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Whisper: WhisperConfig{
			ModelPath:  "models/test.bin",
			BinaryPath: "./whisper",
		},
		Paths: PathsConfig{
			CredentialsFile: "data/users.json",
			HistoryDir:      "data/history",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %v, want :8080", cfg.Server.Addr)
	}
	if cfg.Export.Format != "pdf" {
		t.Errorf("Format = %v, want pdf", cfg.Export.Format)
	}
	if cfg.Pipeline.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %v, want 2", cfg.Pipeline.MaxConcurrent)
	}
	if cfg.Watch.SentenceCount != 3 {
		t.Errorf("SentenceCount = %v, want 3", cfg.Watch.SentenceCount)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  addr: ":9090"

whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper"
  language: "en"

paths:
  credentials_file: "data/users.json"
  history_dir: "data/history"
  temp: "data/temp"

export:
  format: "docx"

logging:
  level: "info"
  format: "text"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %v, want %v", cfg.Server.Addr, ":9090")
	}
	if cfg.Whisper.ModelPath != "models/test.bin" {
		t.Errorf("ModelPath = %v, want %v", cfg.Whisper.ModelPath, "models/test.bin")
	}
	if cfg.Export.Format != "docx" {
		t.Errorf("Format = %v, want %v", cfg.Export.Format, "docx")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
