// Package config loads the optional ".ocrclean.yaml" project config. An
// absent file is not an error: Load returns the documented defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TriageConfig mirrors triage.Thresholds for YAML decoding.
type TriageConfig struct {
	MinAlphaRatio       float64 `yaml:"min_alpha_ratio"`
	MinCharCount        int     `yaml:"min_char_count"`
	MaxListPatternRatio float64 `yaml:"max_list_pattern_ratio"`
	MaxLineLengthCV     float64 `yaml:"max_line_length_cv"`
	MaxFragmentRatio    float64 `yaml:"max_fragment_ratio"`
}

// LanguageConfig mirrors language.Detector's configurable fields.
type LanguageConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	SampleChars         int     `yaml:"sample_chars"`
}

// NoiseConfig selects which suspicion categories the optional noise-word
// stripping stage removes.
type NoiseConfig struct {
	Categories []string `yaml:"categories"`
}

// Config is the full ".ocrclean.yaml" schema (SPEC_FULL.md §4.12).
type Config struct {
	Workers               int            `yaml:"workers"`
	RateLimitFilesPerSec   float64        `yaml:"rate_limit_files_per_sec"`
	Triage                 TriageConfig   `yaml:"triage"`
	Language               LanguageConfig `yaml:"language"`
	Noise                  NoiseConfig    `yaml:"noise"`
	DictionaryDir          string         `yaml:"dictionary_dir"`
	WhitelistPath          string         `yaml:"whitelist_path"`
	VocabContextChars      int            `yaml:"vocab_context_chars"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		Workers:              24,
		RateLimitFilesPerSec: 0,
		Triage: TriageConfig{
			MinAlphaRatio:       0.6,
			MinCharCount:        500,
			MaxListPatternRatio: 0.3,
			MaxLineLengthCV:     1.5,
			MaxFragmentRatio:    0.4,
		},
		Language: LanguageConfig{
			ConfidenceThreshold: 0.5,
			SampleChars:         10000,
		},
		Noise: NoiseConfig{
			Categories: []string{"G", "R"},
		},
		DictionaryDir:     "",
		WhitelistPath:     "",
		VocabContextChars: 40,
	}
}

// Load reads path (typically ".ocrclean.yaml") and overlays it onto
// Default(). A missing file is not an error — Load silently returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	return cfg, nil
}
