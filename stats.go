package nostril

import (
	"fmt"
	"math"
	"sort"
)

// DefaultUnseenWeight is the weight given to an n-gram the model has never
// seen. Trained weights are always in (0, 1], so this sits well below them.
const DefaultUnseenWeight = -1

// Stats is a trained n-gram weight table. Higher weights mean an n-gram is
// more typical of real words. A Stats value never changes after NewStats
// returns, so a single instance can back any number of detectors and
// goroutines.
type Stats struct {
	weights       map[string]float64
	lengths       []int
	defaultWeight float64
	minWeight     float64
	vocabulary    int
	norms         map[int]float64
}

type StatsOption func(s *Stats)

// StatsDefaultWeight sets the penalty used for n-grams missing from the
// table. It must be lower than every stored weight.
func StatsDefaultWeight(w float64) StatsOption {
	return func(s *Stats) {
		s.defaultWeight = w
	}
}

// StatsVocabulary records how many training words the table was built from.
func StatsVocabulary(n int) StatsOption {
	return func(s *Stats) {
		s.vocabulary = n
	}
}

// StatsNorms records the per-length normalization constants the trainer
// divided raw weights by.
func StatsNorms(norms map[int]float64) StatsOption {
	return func(s *Stats) {
		s.norms = make(map[int]float64, len(norms))
		for l, v := range norms {
			s.norms[l] = v
		}
	}
}

// NewStats validates weights and builds an immutable table from them. The
// map is copied; later changes to it are not seen by the returned Stats.
func NewStats(weights map[string]float64, opts ...StatsOption) (*Stats, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("nostril: empty n-gram table")
	}

	s := &Stats{
		weights:       make(map[string]float64, len(weights)),
		defaultWeight: DefaultUnseenWeight,
		minWeight:     math.Inf(1),
		norms:         map[int]float64{},
	}
	for _, o := range opts {
		o(s)
	}

	seen := map[int]bool{}
	for g, w := range weights {
		if g == "" {
			return nil, fmt.Errorf("nostril: empty n-gram in table")
		}
		if !ASCIILower.ContainsAll(g) {
			return nil, fmt.Errorf("nostril: n-gram %q contains characters outside a-z", g)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("nostril: n-gram %q has non-finite weight %v", g, w)
		}
		if w < s.minWeight {
			s.minWeight = w
		}
		seen[len(g)] = true
		s.weights[g] = w
	}

	if math.IsNaN(s.defaultWeight) || s.defaultWeight >= s.minWeight {
		return nil, fmt.Errorf("nostril: default weight %v must be below the minimum trained weight %v",
			s.defaultWeight, s.minWeight)
	}

	for l := range seen {
		s.lengths = append(s.lengths, l)
	}
	sort.Ints(s.lengths)

	return s, nil
}

// Weight returns the weight of g, or the default weight if g is unknown.
func (s *Stats) Weight(g string) float64 {
	if w, ok := s.weights[g]; ok {
		return w
	}
	return s.defaultWeight
}

func (s *Stats) Lookup(g string) (w float64, ok bool) {
	w, ok = s.weights[g]
	return w, ok
}

// Lengths returns the n-gram lengths present in the table, ascending.
func (s *Stats) Lengths() []int {
	out := make([]int, len(s.lengths))
	copy(out, s.lengths)
	return out
}

func (s *Stats) HasLength(n int) bool {
	i := sort.SearchInts(s.lengths, n)
	return i < len(s.lengths) && s.lengths[i] == n
}

func (s *Stats) DefaultWeight() float64 { return s.defaultWeight }

func (s *Stats) MinWeight() float64 { return s.minWeight }

func (s *Stats) Vocabulary() int { return s.vocabulary }

// Len is the number of n-grams in the table, across all lengths.
func (s *Stats) Len() int { return len(s.weights) }

// Norm returns the normalization constant recorded for length n, or 0.
func (s *Stats) Norm(n int) float64 { return s.norms[n] }

// Coverage is the fraction of all possible n-grams of length n that the
// table holds a weight for.
func (s *Stats) Coverage(n int) float64 {
	var cnt int
	for g := range s.weights {
		if len(g) == n {
			cnt++
		}
	}
	return float64(cnt) / ASCIILower.Combinations(n)
}
