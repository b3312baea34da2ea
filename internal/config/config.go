package config

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FieldError identifies the missing or malformed configuration field that
// stopped a stage from starting.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Logging     LoggingConfig     `yaml:"logging"`
	Preprocess  PreprocessConfig  `yaml:"preprocess"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Notes       NotesConfig       `yaml:"notes"`
	Translator  TranslatorConfig  `yaml:"translator"`
	Comparison  ComparisonConfig  `yaml:"comparison"`
	Live        LiveConfig        `yaml:"live"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PreprocessConfig drives the silence-removal run that cleans a
// recording before transcription.
type PreprocessConfig struct {
	InputPath  string `yaml:"input_path"`
	OutputPath string `yaml:"output_path"`
	BinaryPath string `yaml:"binary_path"`
}

// TranscriberConfig drives a single batch transcription run. WatchDir is
// only used by the watch subcommand.
type TranscriberConfig struct {
	MediaPath string `yaml:"media_path"`
	WatchDir  string `yaml:"watch_dir"`
}

// NotesConfig points at the transcript by base path; the stage appends the
// .txt suffix itself and derives the _notes.md/_notes.html/_notes.docx
// outputs from the same base.
type NotesConfig struct {
	TranscriptBase string `yaml:"transcript_base"`
}

type TranslatorConfig struct {
	InputPath      string `yaml:"input_path"`
	OutputPath     string `yaml:"output_path"`
	TargetLanguage string `yaml:"target_language"`
	BatchSize      int    `yaml:"batch_size"`
}

type ComparisonConfig struct {
	OriginalPath   string `yaml:"original_path"`
	TranslatedPath string `yaml:"translated_path"`
	OutputPath     string `yaml:"output_path"`
}

type LiveConfig struct {
	DeviceIndex   int    `yaml:"device_index"`
	Source        string `yaml:"source"` // mic or system
	SessionDir    string `yaml:"session_dir"`
	WindowSeconds int    `yaml:"window_seconds"`
	QueueSize     int    `yaml:"queue_size"`
}

// Load reads the configuration document, applies defaults and validates
// required fields. No file-existence checks happen here; each stage
// validates its own inputs lazily.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.normalizePaths()
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Preprocess.BinaryPath == "" {
		c.Preprocess.BinaryPath = "jumpcutter"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Translator.BatchSize == 0 {
		c.Translator.BatchSize = 50
	}
	if c.Translator.TargetLanguage == "" {
		c.Translator.TargetLanguage = "si"
	}
	if _, err := language.Parse(c.Translator.TargetLanguage); err != nil {
		return &FieldError{Field: "translator.target_language", Reason: fmt.Sprintf("is not a valid language tag: %v", err)}
	}
	if c.Live.Source == "" {
		c.Live.Source = "mic"
	}
	if c.Live.Source != "mic" && c.Live.Source != "system" {
		return &FieldError{Field: "live.source", Reason: `must be "mic" or "system"`}
	}
	if c.Live.SessionDir == "" {
		c.Live.SessionDir = "output/live"
	}
	if c.Live.WindowSeconds == 0 {
		c.Live.WindowSeconds = 4
	}
	if c.Live.QueueSize == 0 {
		c.Live.QueueSize = 4
	}

	return nil
}

// ValidateStage checks the fields the given command actually uses.
// Whisper paths are only required for commands that run speech
// recognition, so a notes or translate run does not need them.
func (c *Config) ValidateStage(command string) error {
	switch command {
	case "transcribe", "live", "watch":
		if c.Whisper.ModelPath == "" {
			return &FieldError{Field: "whisper.model_path", Reason: "is required"}
		}
		if c.Whisper.BinaryPath == "" {
			return &FieldError{Field: "whisper.binary_path", Reason: "is required"}
		}
	}
	return nil
}

// TargetLanguage returns the parsed translation target. Validate has
// already guaranteed the tag parses.
func (c *Config) TargetLanguage() language.Tag {
	return language.MustParse(c.Translator.TargetLanguage)
}

func (c *Config) normalizePaths() {
	clean := func(p *string) {
		if *p != "" {
			*p = filepath.Clean(*p)
		}
	}
	clean(&c.Preprocess.InputPath)
	clean(&c.Preprocess.OutputPath)
	clean(&c.Transcriber.MediaPath)
	clean(&c.Transcriber.WatchDir)
	clean(&c.Notes.TranscriptBase)
	clean(&c.Translator.InputPath)
	clean(&c.Translator.OutputPath)
	clean(&c.Comparison.OriginalPath)
	clean(&c.Comparison.TranslatedPath)
	clean(&c.Comparison.OutputPath)
	clean(&c.Live.SessionDir)
}
