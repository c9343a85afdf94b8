package nostril

import (
	"bytes"
	_ "embed"
	"io"
	"sync"
)

// The default table is trained from this list the first time it is needed.
// It is a few thousand English words plus compound identifiers taken from
// source code comments.
//
//go:embed corpus/words.txt
var defaultCorpus []byte

var (
	defaultOnce     sync.Once
	defaultStats    *Stats
	defaultDetector *Detector
	defaultErr      error
)

func initDefault() {
	defaultStats, defaultErr = Train([]io.Reader{bytes.NewReader(defaultCorpus)},
		TrainerLengths(DefaultTrainLengths...))
	if defaultErr != nil {
		return
	}
	defaultDetector, defaultErr = NewDetector(defaultStats)
}

// DefaultStats returns the table behind Default. It is built once and
// shared by every caller.
func DefaultStats() (*Stats, error) {
	defaultOnce.Do(initDefault)
	return defaultStats, defaultErr
}

// Default returns the detector Nonsense uses: DefaultConfig over
// DefaultStats.
func Default() (*Detector, error) {
	defaultOnce.Do(initDefault)
	return defaultDetector, defaultErr
}

// Nonsense classifies text with the default detector. It returns an
// *InputTooShortError when text has fewer than DefaultMinLength letters.
func Nonsense(text string) (bool, error) {
	d, err := Default()
	if err != nil {
		return false, err
	}
	return d.Nonsense(text)
}

// GenerateDetector builds a detector over the default table with opts
// applied on top of DefaultConfig. The table is shared, not copied.
func GenerateDetector(opts ...Option) (*Detector, error) {
	stats, err := DefaultStats()
	if err != nil {
		return nil, err
	}
	return NewDetector(stats, opts...)
}
