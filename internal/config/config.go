package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Paths    PathsConfig    `yaml:"paths"`
	Whisper  WhisperConfig  `yaml:"whisper"`
	FFmpeg   FFmpegConfig   `yaml:"ffmpeg"`
	YtDlp    YtDlpConfig    `yaml:"ytdlp"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Export   ExportConfig   `yaml:"export"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Watch    WatchConfig    `yaml:"watch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// SessionSecret is taken from the SESSION_SECRET environment variable.
	SessionSecret     string `yaml:"-"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
}

type PathsConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	HistoryDir      string `yaml:"history_dir"`
	Temp            string `yaml:"temp"`
	Output          string `yaml:"output"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type YtDlpConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
	// APIKeys are taken from the GEMINI_API_KEYS environment variable
	// (comma-separated).
	APIKeys []string `yaml:"-"`
}

type OpenAIConfig struct {
	Model string `yaml:"model"`
	Voice string `yaml:"voice"`
	// APIKey is taken from the OPENAI_API_KEY environment variable.
	APIKey string `yaml:"-"`
}

type ExportConfig struct {
	Format string `yaml:"format"`
}

type PipelineConfig struct {
	MaxConcurrent       int `yaml:"max_concurrent"`
	StageTimeoutSeconds int `yaml:"stage_timeout_seconds"`
	AssetTTLMinutes     int `yaml:"asset_ttl_minutes"`
}

type WatchConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Dir           string `yaml:"dir"`
	User          string `yaml:"user"`
	SentenceCount int    `yaml:"sentence_count"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Paths.CredentialsFile == "" {
		return fmt.Errorf("paths.credentials_file is required")
	}
	if c.Paths.HistoryDir == "" {
		return fmt.Errorf("paths.history_dir is required")
	}
	if c.Export.Format != "" && c.Export.Format != "pdf" && c.Export.Format != "docx" {
		return fmt.Errorf("export.format must be pdf or docx, got %q", c.Export.Format)
	}
	if c.Watch.Enabled && c.Watch.Dir == "" {
		return fmt.Errorf("watch.dir is required when watch.enabled")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.SessionTTLMinutes == 0 {
		c.Server.SessionTTLMinutes = 12 * 60
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.YtDlp.BinaryPath == "" {
		c.YtDlp.BinaryPath = "yt-dlp"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "tts-1"
	}
	if c.OpenAI.Voice == "" {
		c.OpenAI.Voice = "alloy"
	}
	if c.Export.Format == "" {
		c.Export.Format = "pdf"
	}
	if c.Pipeline.MaxConcurrent == 0 {
		c.Pipeline.MaxConcurrent = 2
	}
	if c.Pipeline.StageTimeoutSeconds == 0 {
		c.Pipeline.StageTimeoutSeconds = 300
	}
	if c.Pipeline.AssetTTLMinutes == 0 {
		c.Pipeline.AssetTTLMinutes = 15
	}
	if c.Watch.User == "" {
		c.Watch.User = "library"
	}
	if c.Watch.SentenceCount == 0 {
		c.Watch.SentenceCount = 3
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// loadEnv merges secrets that never live in the config file.
func (c *Config) loadEnv() {
	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" {
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Gemini.APIKeys = append(c.Gemini.APIKeys, k)
			}
		}
	}
	c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	c.Server.SessionSecret = os.Getenv("SESSION_SECRET")
}
