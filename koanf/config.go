// Package koanf loads figreact configuration from a YAML file and
// FIGREACT_* environment variables.
package koanf

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/figreact"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPath is read when no explicit path is given.
const DefaultConfigPath = ".figreact.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FIGREACT_"

const maxConfigFileSize = 1024 * 1024

// Config holds every configurable setting.
type Config struct {
	MinRepeats        int               `koanf:"min_repeats"`
	ComponentNameBase string            `koanf:"component_name_base"`
	SkipTags          []string          `koanf:"skip_tags"`
	Fingerprint       FingerprintConfig `koanf:"fingerprint"`
	Relabel           RelabelConfig     `koanf:"relabel"`
	DBPath            string            `koanf:"db_path"`
}

// FingerprintConfig tunes fingerprinting.
type FingerprintConfig struct {
	ClassAttributes  []string `koanf:"class_attributes"`
	IgnoreAttributes []string `koanf:"ignore_attributes"`
	RawClass         bool     `koanf:"raw_class"`
	Deep             bool     `koanf:"deep"`
}

// RelabelConfig configures the optional relabeling stage.
type RelabelConfig struct {
	// Model is the Gemini model. Empty selects the relabeler's default.
	Model string `koanf:"model"`

	// Target is the UI framework to relabel for. Empty disables the stage.
	Target string `koanf:"target"`

	// RPS caps model requests per second.
	RPS float64 `koanf:"rps"`
}

// DefaultRelabelRPS is the default model request rate.
const DefaultRelabelRPS = 1.0

// LoadConfig reads configuration from path, then overrides it with
// environment variables.
//
// Precedence (highest to lowest):
//  1. Environment variables (FIGREACT_MIN_REPEATS, FIGREACT_RELABEL_TARGET, ...)
//  2. YAML config file
//  3. Defaults
//
// An empty path reads DefaultConfigPath if it exists. An explicit path
// that does not exist returns ENOTFOUND.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	content, err := readConfigFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case errors.Is(err, fs.ErrNotExist):
		return nil, figreact.Errorf(figreact.ENOTFOUND, "config file %s not found", path)
	case err != nil:
		return nil, err
	default:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, figreact.Errorf(figreact.EINVALID, "failed to load config file %s: %s", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, figreact.Errorf(figreact.EINVALID, "failed to decode config: %s", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, figreact.Errorf(figreact.EINVALID, "config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, figreact.Errorf(figreact.EINVALID, "config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// envKey maps an environment variable to a config key:
//
//	FIGREACT_MIN_REPEATS     -> min_repeats
//	FIGREACT_FINGERPRINT_DEEP -> fingerprint.deep
//	FIGREACT_RELABEL_TARGET  -> relabel.target
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range []string{"fingerprint", "relabel"} {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

func applyDefaults(cfg *Config) {
	cfg.SkipTags = splitList(cfg.SkipTags)
	cfg.Fingerprint.ClassAttributes = splitList(cfg.Fingerprint.ClassAttributes)
	cfg.Fingerprint.IgnoreAttributes = splitList(cfg.Fingerprint.IgnoreAttributes)

	opts := cfg.Options().WithDefaults()
	cfg.MinRepeats = opts.MinRepeats
	cfg.ComponentNameBase = opts.ComponentNameBase
	cfg.SkipTags = opts.SkipTags

	if cfg.Relabel.RPS == 0 {
		cfg.Relabel.RPS = DefaultRelabelRPS
	}
}

// splitList expands comma-separated entries, as set through environment
// variables, and trims whitespace. A nil list stays nil.
func splitList(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return err
	}
	if c.Relabel.RPS < 0 {
		return figreact.Errorf(figreact.EINVALID, "relabel rps must not be negative")
	}
	return nil
}

// Options returns the extraction options described by the configuration.
func (c *Config) Options() figreact.Options {
	return figreact.Options{
		MinRepeats:        c.MinRepeats,
		ComponentNameBase: c.ComponentNameBase,
		SkipTags:          c.SkipTags,
		Fingerprint: figreact.FingerprintOptions{
			ClassAttributes:  c.Fingerprint.ClassAttributes,
			IgnoreAttributes: c.Fingerprint.IgnoreAttributes,
			RawClass:         c.Fingerprint.RawClass,
			Deep:             c.Fingerprint.Deep,
		},
	}
}
