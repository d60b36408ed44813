package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CorpusConfig locates the per-speaker transcript files.
type CorpusConfig struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
}

// TopicsConfig locates the preset topic keyword file.
type TopicsConfig struct {
	File string `yaml:"file"`
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	DefaultK int `yaml:"default_k"`
}

// TokenizerConfig controls term normalization for documents and topics alike.
type TokenizerConfig struct {
	CaseFold *bool `yaml:"case_fold,omitempty"`
	Stem     bool  `yaml:"stem"`
}

// Folds reports whether terms are lowercased. Unset means true.
func (t TokenizerConfig) Folds() bool {
	return t.CaseFold == nil || *t.CaseFold
}

// SummaryConfig configures speaker profiles.
type SummaryConfig struct {
	KeyTerms int `yaml:"key_terms"`
}

// LoggingConfig selects the zap preset and level.
type LoggingConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Topics    TopicsConfig    `yaml:"topics"`
	Search    SearchConfig    `yaml:"search"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Summary   SummaryConfig   `yaml:"summary"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Environment variables that override file values.
const (
	EnvCorpusDir  = "DEBATE_CORPUS_DIR"
	EnvTopicsFile = "DEBATE_TOPICS_FILE"
	EnvLogLevel   = "DEBATE_LOG_LEVEL"
	EnvDefaultK   = "DEBATE_DEFAULT_K"
)

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/debate/config.yaml.
// If neither exists, it writes defaults to ~/.config/debate/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "debate", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	fold := true
	return &AppConfig{
		Corpus:    CorpusConfig{Dir: "transcripts", Pattern: "*.txt"},
		Topics:    TopicsConfig{File: "topics_terms.txt"},
		Search:    SearchConfig{DefaultK: 5},
		Tokenizer: TokenizerConfig{CaseFold: &fold},
		Summary:   SummaryConfig{KeyTerms: 8},
		Logging:   LoggingConfig{Env: "local", Level: "info"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Corpus.Dir == "" {
		cfg.Corpus.Dir = def.Corpus.Dir
	}
	if cfg.Corpus.Pattern == "" {
		cfg.Corpus.Pattern = def.Corpus.Pattern
	}
	if cfg.Topics.File == "" {
		cfg.Topics.File = def.Topics.File
	}
	if cfg.Search.DefaultK < 1 {
		cfg.Search.DefaultK = def.Search.DefaultK
	}
	if cfg.Summary.KeyTerms < 1 {
		cfg.Summary.KeyTerms = def.Summary.KeyTerms
	}
	if cfg.Logging.Env == "" {
		cfg.Logging.Env = def.Logging.Env
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

func applyEnv(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvCorpusDir)); v != "" {
		cfg.Corpus.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTopicsFile)); v != "" {
		cfg.Topics.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDefaultK)); v != "" {
		if k, err := strconv.Atoi(v); err == nil && k > 0 {
			cfg.Search.DefaultK = k
		}
	}
}
