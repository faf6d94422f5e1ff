package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable paths and decode settings.
type Config struct {
	// Paths
	Input    string `json:"input" yaml:"input"`
	Output   string `json:"output" yaml:"output"`
	Manifest string `json:"manifest" yaml:"manifest"`
	Card     string `json:"card" yaml:"card"`

	// CardBackground is an optional PNG, JPEG or TGA drawn behind the card text.
	CardBackground string `json:"card_background" yaml:"card_background"`

	// Decode settings
	Game      string `json:"game" yaml:"game"`
	Format    string `json:"format" yaml:"format"`
	CardScale int    `json:"card_scale" yaml:"card_scale"`
	Workers   int    `json:"workers" yaml:"workers"`

	// AR2Key seeds the AR2 layer, as hex. Empty means the device default.
	AR2Key string `json:"ar2_key" yaml:"ar2_key"`
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Input != "" {
		c.Input = flags.Input
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Manifest != "" {
		c.Manifest = flags.Manifest
	}
	if flags.Card != "" {
		c.Card = flags.Card
	}
	if flags.CardBackground != "" {
		c.CardBackground = flags.CardBackground
	}
	if flags.Game != "" {
		c.Game = flags.Game
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.AR2Key != "" {
		c.AR2Key = flags.AR2Key
	}
	if flags.CardScale > 0 {
		c.CardScale = flags.CardScale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Output files sit next to the input unless placed elsewhere
	if c.Input != "" {
		base := strings.TrimSuffix(c.Input, filepath.Ext(c.Input))
		if c.Output == "" {
			c.Output = base + ".raw.txt"
		}
		if c.Manifest == "" {
			c.Manifest = filepath.Join(filepath.Dir(c.Output), "manifest.json")
		}
		if c.Game == "" {
			c.Game = filepath.Base(base)
		}
	}

	// Defaults for decode settings
	if c.Format == "" {
		c.Format = "armax"
	}
	if c.CardScale <= 0 {
		c.CardScale = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// AR2Seed parses AR2Key. ok is false when no key is set.
func (c *Config) AR2Seed() (key uint32, ok bool, err error) {
	if c.AR2Key == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(c.AR2Key), "0x"), 16, 32)
	if err != nil {
		return 0, false, fmt.Errorf("config: ar2 key %q: %w", c.AR2Key, err)
	}
	return uint32(v), true, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Input          string
	Output         string
	Manifest       string
	Card           string
	CardBackground string
	Game           string
	Format         string
	AR2Key         string
	CardScale      int
	Workers        int
}
