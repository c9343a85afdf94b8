package nostril

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverlap is returned by Calibrate, wrapped, when some good string scores
// no higher than some bad string.
var ErrOverlap = errors.New("nostril: good and bad scores overlap")

// Calibrate scores good (real) and bad (nonsense) strings under stats and
// cfg and returns the threshold halfway between the lowest good score and
// the highest bad score. Strings shorter than cfg.MinLength are ignored.
//
// If the two sets overlap the midpoint is still returned, together with an
// error. Feed it more training or test data, or lean the threshold towards
// the side whose mistakes you can live with.
func Calibrate(stats *Stats, cfg Config, good, bad []string) (thresh float64, err error) {
	if err := cfg.Validate(stats); err != nil {
		return 0, err
	}

	var minGood = math.Inf(1)
	var maxBad = math.Inf(-1)
	var ngood, nbad int

	for _, s := range good {
		san := Sanitize(s)
		if len(san) < cfg.MinLength {
			continue
		}
		ngood++
		minGood = min(minGood, Score(san, stats, cfg))
	}
	for _, s := range bad {
		san := Sanitize(s)
		if len(san) < cfg.MinLength {
			continue
		}
		nbad++
		maxBad = max(maxBad, Score(san, stats, cfg))
	}

	if ngood == 0 || nbad == 0 {
		return 0, fmt.Errorf("nostril: empty test; %d usable good and %d usable bad strings", ngood, nbad)
	}

	thresh = (minGood + maxBad) / 2
	if minGood <= maxBad {
		return thresh, fmt.Errorf("%w; lowest good score %f, highest bad score %f", ErrOverlap, minGood, maxBad)
	}
	return thresh, nil
}
