// Package config discovers and decodes minijson.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name looked up by Find.
const FileName = "minijson.toml"

// Config mirrors the sections of minijson.toml.
type Config struct {
	Output OutputConfig `toml:"output"`
	Parse  ParseConfig  `toml:"parse"`
	Cache  CacheConfig  `toml:"cache"`

	// Path is the file the values came from; empty for defaults.
	Path string `toml:"-"`
}

type OutputConfig struct {
	Color  string `toml:"color"`
	Tokens bool   `toml:"tokens"`
	Format string `toml:"format"`
}

type ParseConfig struct {
	MaxDepth int `toml:"max_depth"`
	// DecodeText strips a BOM, transcodes UTF-16 and folds CRLF before lexing.
	DecodeText bool `toml:"decode_text"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the values used when no file is found.
func Default() Config {
	return Config{
		Output: OutputConfig{Color: "auto", Tokens: true, Format: "pretty"},
	}
}

// Find walks up from startDir looking for minijson.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("output", "color") {
		switch cfg.Output.Color {
		case "auto", "on", "off":
		default:
			return Config{}, fmt.Errorf("%s: [output].color must be auto, on or off, got %q", path, cfg.Output.Color)
		}
	}
	if meta.IsDefined("output", "format") {
		switch cfg.Output.Format {
		case "pretty", "json", "yaml", "tree":
		default:
			return Config{}, fmt.Errorf("%s: [output].format must be pretty, json, yaml or tree, got %q", path, cfg.Output.Format)
		}
	}
	if cfg.Parse.MaxDepth < 0 {
		return Config{}, fmt.Errorf("%s: [parse].max_depth must not be negative", path)
	}
	if meta.IsDefined("cache", "dir") && cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		// относительный путь считается от каталога с манифестом
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads explicit when set, otherwise the nearest minijson.toml
// above startDir. Without a file it returns Default.
func Discover(startDir, explicit string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
