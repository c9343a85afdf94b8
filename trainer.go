package nostril

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
)

// DefaultTrainLengths are the n-gram lengths a Trainer counts unless told
// otherwise.
var DefaultTrainLengths = []int{2, 3, 4, 5}

// Trainer accumulates document frequencies of n-grams over a list of words
// and compiles them into Stats. A word counts once towards an n-gram no
// matter how often the n-gram occurs inside it.
type Trainer struct {
	lengths       []int
	defaultWeight float64
	minWord       int
	df            map[string]int
	words         int
	seen          map[string]struct{}
}

type TrainerOption func(t *Trainer)

// TrainerLengths sets the n-gram lengths to count.
func TrainerLengths(lengths ...int) TrainerOption {
	return func(t *Trainer) {
		t.lengths = append([]int(nil), lengths...)
	}
}

// TrainerDefaultWeight sets the unseen-n-gram weight of the compiled Stats.
func TrainerDefaultWeight(w float64) TrainerOption {
	return func(t *Trainer) {
		t.defaultWeight = w
	}
}

// TrainerMinWordLength ignores sanitized words shorter than n letters.
func TrainerMinWordLength(n int) TrainerOption {
	return func(t *Trainer) {
		t.minWord = n
	}
}

func NewTrainer(opts ...TrainerOption) (*Trainer, error) {
	t := &Trainer{
		lengths:       append([]int(nil), DefaultTrainLengths...),
		defaultWeight: DefaultUnseenWeight,
		minWord:       1,
		df:            make(map[string]int),
		seen:          make(map[string]struct{}),
	}
	for _, o := range opts {
		o(t)
	}

	if len(t.lengths) == 0 {
		return nil, &ConfigError{Field: "lengths", Reason: "at least one n-gram length is required"}
	}
	for _, l := range t.lengths {
		if l < 1 {
			return nil, &ConfigError{Field: "lengths", Reason: fmt.Sprintf("length %d is below 1", l)}
		}
	}
	sort.Ints(t.lengths)
	if t.defaultWeight >= 0 || math.IsNaN(t.defaultWeight) {
		return nil, &ConfigError{Field: "default_weight", Reason: "must be negative"}
	}
	return t, nil
}

// Add reads whitespace separated words from rdr. Each word is sanitized
// before counting; words that sanitize to nothing are skipped.
func (t *Trainer) Add(rdr io.Reader) error {
	scn := bufio.NewScanner(rdr)
	scn.Buffer(make([]byte, 8192), 1<<20)
	scn.Split(bufio.ScanWords)
	for scn.Scan() {
		t.addWord(scn.Text())
	}
	return scn.Err()
}

func (t *Trainer) AddWords(words ...string) {
	for _, w := range words {
		t.addWord(w)
	}
}

func (t *Trainer) addWord(raw string) {
	w := Sanitize(raw)
	if w == "" || len(w) < t.minWord {
		return
	}
	t.words++

	clear(t.seen)
	for _, l := range t.lengths {
		for i := 0; i+l <= len(w); i++ {
			g := w[i : i+l]
			if _, ok := t.seen[g]; ok {
				continue
			}
			t.seen[g] = struct{}{}
			t.df[g]++
		}
	}
}

// Words is the number of words counted so far.
func (t *Trainer) Words() int {
	return t.words
}

// Compile turns the counts into Stats. Each n-gram g of length L gets
// ln(1+df(g)) / ln(1+maxdf(L)), so the most widespread n-gram of every
// length scores 1 and the rarest seen one stays above 0.
func (t *Trainer) Compile() (*Stats, error) {
	if t.words == 0 || len(t.df) == 0 {
		return nil, fmt.Errorf("nostril: trainer has no words")
	}

	maxdf := map[int]int{}
	for g, c := range t.df {
		if c > maxdf[len(g)] {
			maxdf[len(g)] = c
		}
	}

	norms := make(map[int]float64, len(maxdf))
	for l, c := range maxdf {
		norms[l] = math.Log1p(float64(c))
	}

	weights := make(map[string]float64, len(t.df))
	for g, c := range t.df {
		weights[g] = math.Log1p(float64(c)) / norms[len(g)]
	}

	return NewStats(weights,
		StatsDefaultWeight(t.defaultWeight),
		StatsVocabulary(t.words),
		StatsNorms(norms))
}

// Train builds Stats from every reader in turn using the default trainer
// settings plus opts.
func Train(rdr []io.Reader, opts ...TrainerOption) (*Stats, error) {
	if len(rdr) < 1 {
		return nil, fmt.Errorf("nostril: requires at least one reader")
	}
	tr, err := NewTrainer(opts...)
	if err != nil {
		return nil, err
	}
	for _, r := range rdr {
		if err := tr.Add(r); err != nil {
			return nil, err
		}
	}
	return tr.Compile()
}
