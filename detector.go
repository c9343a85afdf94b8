package nostril

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Detector classifies strings as nonsense or real using one Stats table and
// one fixed Config. It holds no mutable state apart from the optional score
// cache, which is safe for concurrent use, so a Detector may be shared
// freely between goroutines.
type Detector struct {
	stats *Stats
	cfg   Config
	cache *lru.Cache[string, float64]
}

// NewDetector applies opts on top of DefaultConfig and checks the result
// against stats. An n-gram length stats was not trained for fails here with
// an *UnsupportedLengthError, never later during classification.
//
// The detector keeps a reference to stats; the table itself is not copied.
func NewDetector(stats *Stats, opts ...Option) (*Detector, error) {
	if stats == nil {
		return nil, &ConfigError{Field: "stats", Reason: "no statistics given"}
	}

	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if err := cfg.Validate(stats); err != nil {
		return nil, err
	}

	d := &Detector{
		stats: stats,
		cfg:   cfg.clone(),
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, float64](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("nostril: score cache: %w", err)
		}
		d.cache = cache
	}
	return d, nil
}

// Nonsense reports whether raw looks like random characters rather than
// word-like text. Only the letters of raw are considered. If fewer than
// MinLength letters remain an *InputTooShortError is returned; callers that
// want to treat short strings in some particular way must do so themselves.
func (d *Detector) Nonsense(raw string) (bool, error) {
	score, err := d.Score(raw)
	if err != nil {
		return false, err
	}
	return score < d.cfg.Threshold, nil
}

// Score sanitizes raw and returns its score. Higher is more word-like.
func (d *Detector) Score(raw string) (float64, error) {
	s := Sanitize(raw)
	if len(s) < d.cfg.MinLength {
		return 0, &InputTooShortError{Input: raw, Sanitized: s, MinLength: d.cfg.MinLength}
	}
	return d.ScoreSanitized(s), nil
}

// ScoreSanitized scores s without sanitizing it or checking its length.
func (d *Detector) ScoreSanitized(s string) float64 {
	if d.cache != nil {
		if v, ok := d.cache.Get(s); ok {
			return v
		}
	}
	v := Score(s, d.stats, d.cfg)
	if d.cache != nil {
		d.cache.Add(s, v)
	}
	return v
}

// Config returns a copy of the detector's configuration.
func (d *Detector) Config() Config {
	return d.cfg.clone()
}

func (d *Detector) Stats() *Stats {
	return d.stats
}
