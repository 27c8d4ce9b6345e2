// Package config loads the optional ytgrab.yaml settings file. Every field
// has a working default, so a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from "30s" / "5m" style YAML
// strings (plain integers are taken as seconds).
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	s := strings.TrimSpace(value.Value)
	if n, err := strconv.Atoi(s); err == nil {
		*d = Duration(time.Duration(n) * time.Second)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// LanguageModels lists the transcription models offered for one language.
type LanguageModels struct {
	Default string   `yaml:"default"`
	Models  []string `yaml:"models"`
}

type Config struct {
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	YtDlpPath   string `yaml:"ytdlp_path"`

	// DownloadDir overrides the probed Android download directory.
	DownloadDir string `yaml:"download_dir"`

	// SegmentTimeout bounds each ffmpeg extraction ("30s", "5m", ...).
	// Zero means unbounded.
	SegmentTimeout Duration `yaml:"segment_timeout"`

	TranscribeCommand string   `yaml:"transcribe_command"`
	TranscribeTimeout Duration `yaml:"transcribe_timeout"`

	Models map[string]LanguageModels `yaml:"models"`
}

// Default returns the built-in configuration.
func Default() Config {
	whisperLarge := LanguageModels{
		Default: "openai/whisper-large-v3",
		Models:  []string{"openai/whisper-large-v3"},
	}
	return Config{
		FFmpegPath:        "ffmpeg",
		FFprobePath:       "ffprobe",
		YtDlpPath:         "yt-dlp",
		TranscribeCommand: "transcribe",
		TranscribeTimeout: Duration(time.Hour),
		Models: map[string]LanguageModels{
			"arabic":      whisperLarge,
			"russian":     whisperLarge,
			"english":     whisperLarge,
			"turkish":     whisperLarge,
			"azerbaijani": whisperLarge,
		},
	}
}

// Load reads the config at path, filling unset fields from Default. A
// missing file yields the defaults; a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	def := Default()
	if c.FFmpegPath == "" {
		c.FFmpegPath = def.FFmpegPath
	}
	if c.FFprobePath == "" {
		c.FFprobePath = def.FFprobePath
	}
	if c.YtDlpPath == "" {
		c.YtDlpPath = def.YtDlpPath
	}
	if c.TranscribeCommand == "" {
		c.TranscribeCommand = def.TranscribeCommand
	}
	if c.TranscribeTimeout <= 0 {
		c.TranscribeTimeout = def.TranscribeTimeout
	}
	if len(c.Models) == 0 {
		c.Models = def.Models
	}
	return c
}

// ModelsFor returns the model choices for a language, falling back to the
// built-in default set for unknown languages.
func (c Config) ModelsFor(language string) LanguageModels {
	if lm, ok := c.Models[language]; ok {
		return lm
	}
	return LanguageModels{
		Default: "openai/whisper-large-v3",
		Models:  []string{"openai/whisper-large-v3"},
	}
}
