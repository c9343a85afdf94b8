package nostril

import "gonum.org/v1/gonum/stat"

// Score computes how word-like sanitized is under stats. For every length in
// cfg.Lengths the weights of all n-grams of that length are averaged, with
// unknown n-grams taking the table's default weight. The per-length means
// are then combined as a mean weighted by cfg.LengthWeights.
//
// A length longer than sanitized yields no n-grams and takes no part in the
// combination. If no length yields any n-grams the default weight is
// returned, which is below every threshold a trained table can justify.
//
// sanitized must already be the output of Sanitize, and every length in cfg
// must be known to stats; Detector enforces both.
func Score(sanitized string, stats *Stats, cfg Config) float64 {
	means := make([]float64, 0, len(cfg.Lengths))
	shares := make([]float64, 0, len(cfg.Lengths))

	var vals []float64
	for _, l := range cfg.Lengths {
		n := ngramCount(sanitized, l)
		if n == 0 {
			continue
		}
		vals = vals[:0]
		for i := 0; i < n; i++ {
			vals = append(vals, stats.Weight(sanitized[i:i+l]))
		}
		means = append(means, stat.Mean(vals, nil))
		shares = append(shares, cfg.lengthWeight(l))
	}

	if len(means) == 0 {
		return stats.DefaultWeight()
	}
	return stat.Mean(means, shares)
}
