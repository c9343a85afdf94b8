package nostril

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultMinLength is the fewest letters a string may have after
	// sanitizing. Strings of exactly this length are accepted.
	DefaultMinLength = 6

	// DefaultThreshold was picked against dictionary words and random
	// strings so that practically no dictionary word falls below it. Random
	// strings that score above it are let through as "real".
	DefaultThreshold = -0.35
)

// Config holds the tunable parameters of a Detector. A string is nonsense
// when its score is strictly below Threshold.
type Config struct {
	// Lengths are the n-gram lengths combined into the score. Every length
	// must be present in the Stats the detector is built on.
	Lengths []int

	// LengthWeights is the share of each length in the combined score.
	// Lengths without an entry weigh 1.
	LengthWeights map[int]float64

	Threshold float64
	MinLength int

	// CacheSize enables an LRU of recent scores when positive.
	CacheSize int
}

func DefaultConfig() Config {
	return Config{
		Lengths:       []int{2, 3, 4},
		LengthWeights: map[int]float64{2: 1, 3: 2, 4: 1},
		Threshold:     DefaultThreshold,
		MinLength:     DefaultMinLength,
	}
}

func (c Config) clone() Config {
	out := c
	out.Lengths = append([]int(nil), c.Lengths...)
	if c.LengthWeights != nil {
		out.LengthWeights = make(map[int]float64, len(c.LengthWeights))
		for l, w := range c.LengthWeights {
			out.LengthWeights[l] = w
		}
	}
	return out
}

func (c Config) lengthWeight(n int) float64 {
	if w, ok := c.LengthWeights[n]; ok {
		return w
	}
	return 1
}

// Validate checks c on its own and, when stats is not nil, against the
// lengths stats was trained for.
func (c Config) Validate(stats *Stats) error {
	if len(c.Lengths) == 0 {
		return &ConfigError{Field: "lengths", Reason: "at least one n-gram length is required"}
	}
	seen := map[int]bool{}
	for _, l := range c.Lengths {
		if seen[l] {
			return &ConfigError{Field: "lengths", Reason: fmt.Sprintf("length %d listed twice", l)}
		}
		seen[l] = true
		if l < 1 {
			return &UnsupportedLengthError{Length: l}
		}
		if stats != nil && !stats.HasLength(l) {
			return &UnsupportedLengthError{Length: l, Available: stats.Lengths()}
		}
	}
	for l, w := range c.LengthWeights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return &ConfigError{Field: "length_weights", Reason: fmt.Sprintf("weight %v for length %d must be positive", w, l)}
		}
	}
	if math.IsNaN(c.Threshold) {
		return &ConfigError{Field: "threshold", Reason: "must be a number"}
	}
	if c.MinLength < 1 {
		return &ConfigError{Field: "min_length", Reason: fmt.Sprintf("%d is below 1", c.MinLength)}
	}
	shortest := c.Lengths[0]
	for _, l := range c.Lengths {
		shortest = min(shortest, l)
	}
	if c.MinLength < shortest {
		return &ConfigError{Field: "min_length", Reason: fmt.Sprintf("%d is shorter than the shortest n-gram length %d", c.MinLength, shortest)}
	}
	if c.CacheSize < 0 {
		return &ConfigError{Field: "cache_size", Reason: "must not be negative"}
	}
	return nil
}

// Option overrides one part of the configuration a Detector is built with.
type Option func(c *Config)

func WithLengths(lengths ...int) Option {
	return func(c *Config) {
		c.Lengths = append([]int(nil), lengths...)
	}
}

func WithLengthWeights(weights map[int]float64) Option {
	return func(c *Config) {
		c.LengthWeights = make(map[int]float64, len(weights))
		for l, w := range weights {
			c.LengthWeights[l] = w
		}
	}
}

func WithThreshold(t float64) Option {
	return func(c *Config) {
		c.Threshold = t
	}
}

func WithMinLength(n int) Option {
	return func(c *Config) {
		c.MinLength = n
	}
}

func WithCache(size int) Option {
	return func(c *Config) {
		c.CacheSize = size
	}
}

// WithConfig replaces the whole configuration; later options still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg.clone()
	}
}

// fileConfig is the on-disk shape. Every field is optional; missing ones
// keep their defaults.
type fileConfig struct {
	Lengths       []int              `toml:"lengths" yaml:"lengths"`
	LengthWeights map[string]float64 `toml:"length_weights" yaml:"length_weights"`
	Threshold     *float64           `toml:"threshold" yaml:"threshold"`
	MinLength     *int               `toml:"min_length" yaml:"min_length"`
	CacheSize     *int               `toml:"cache_size" yaml:"cache_size"`
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file and applies it
// on top of DefaultConfig. The result is not validated against any Stats.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("nostril: read config %s: %w", path, err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		return Config{}, &ConfigError{Field: "path", Reason: fmt.Sprintf("unknown config format %q", ext)}
	}
	if err != nil {
		return Config{}, fmt.Errorf("nostril: parse config %s: %w", path, err)
	}

	return fc.apply(DefaultConfig())
}

func (fc fileConfig) apply(c Config) (Config, error) {
	if len(fc.Lengths) > 0 {
		c.Lengths = fc.Lengths
	}
	if fc.LengthWeights != nil {
		keys := make([]string, 0, len(fc.LengthWeights))
		for k := range fc.LengthWeights {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		c.LengthWeights = make(map[int]float64, len(keys))
		for _, k := range keys {
			l, err := strconv.Atoi(k)
			if err != nil {
				return Config{}, &ConfigError{Field: "length_weights", Reason: fmt.Sprintf("key %q is not an integer", k)}
			}
			c.LengthWeights[l] = fc.LengthWeights[k]
		}
	}
	if fc.Threshold != nil {
		c.Threshold = *fc.Threshold
	}
	if fc.MinLength != nil {
		c.MinLength = *fc.MinLength
	}
	if fc.CacheSize != nil {
		c.CacheSize = *fc.CacheSize
	}
	return c, nil
}
