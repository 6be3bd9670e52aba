// Package config loads the tool's YAML configuration: where workspaces
// live and how the page detector matches OCR text to page types.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Page describes how to recognize one page type from OCR text: a
// primary match phrase plus alternatives, all matched as
// case-insensitive substrings.
type Page struct {
	Match        string   `yaml:"ocr_match"`
	Alternatives []string `yaml:"ocr_alternatives"`
}

// OCRSettings configures the Tesseract pass of the page detector.
type OCRSettings struct {
	// Language is a Tesseract language code such as "eng".
	Language string `yaml:"language"`
	// ConfidenceThreshold drops recognized words below this confidence
	// (0..1) before matching.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

// Config is the root of config.yaml.
type Config struct {
	WorkspacesRoot string          `yaml:"workspaces_root"`
	OCR            OCRSettings     `yaml:"ocr"`
	Pages          map[string]Page `yaml:"pages"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		WorkspacesRoot: "workspaces",
		OCR: OCRSettings{
			Language:            "eng",
			ConfidenceThreshold: 0.5,
		},
		Pages: map[string]Page{},
	}
}

// Load reads a YAML config file and fills unset fields from Default.
// A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	if cfg.WorkspacesRoot == "" {
		cfg.WorkspacesRoot = "workspaces"
	}
	if cfg.OCR.Language == "" {
		cfg.OCR.Language = "eng"
	}
	if cfg.Pages == nil {
		cfg.Pages = map[string]Page{}
	}
	return cfg, nil
}
