package nostril

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainerDocumentFrequency(t *testing.T) {
	tr, err := NewTrainer(TrainerLengths(3, 2))
	require.NoError(t, err)
	tr.AddWords("abab", "abc")
	require.Equal(t, 2, tr.Words())

	s, err := tr.Compile()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, s.Lengths())
	assert.Equal(t, 2, s.Vocabulary())

	// "ab" occurs in both words, twice in the first; it counts once per word.
	assert.InDelta(t, 1, s.Weight("ab"), 1e-12)
	assert.InDelta(t, math.Log(2)/math.Log(3), s.Weight("ba"), 1e-12)
	assert.InDelta(t, math.Log(2)/math.Log(3), s.Weight("bc"), 1e-12)
	assert.InDelta(t, math.Log(3), s.Norm(2), 1e-12)

	for _, g := range []string{"aba", "bab", "abc"} {
		assert.InDelta(t, 1, s.Weight(g), 1e-12, g)
	}
	assert.Equal(t, float64(DefaultUnseenWeight), s.Weight("ca"))
}

func TestTrainerAddSanitizes(t *testing.T) {
	tr, err := NewTrainer()
	require.NoError(t, err)
	require.NoError(t, tr.Add(strings.NewReader("Foo_Bar42 hello\n  world 1234 \t")))
	assert.Equal(t, 3, tr.Words())

	s, err := tr.Compile()
	require.NoError(t, err)
	assert.Equal(t, DefaultTrainLengths, s.Lengths())
	_, ok := s.Lookup("oobar")
	assert.True(t, ok)
	_, ok = s.Lookup("Foo")
	assert.False(t, ok)
}

func TestTrainerMinWordLength(t *testing.T) {
	tr, err := NewTrainer(TrainerMinWordLength(5))
	require.NoError(t, err)
	tr.AddWords("abc", "abcdef")
	assert.Equal(t, 1, tr.Words())
}

func TestTrainerDefaultWeight(t *testing.T) {
	tr, err := NewTrainer(TrainerDefaultWeight(-4))
	require.NoError(t, err)
	tr.AddWords("hello")
	s, err := tr.Compile()
	require.NoError(t, err)
	assert.Equal(t, float64(-4), s.Weight("zz"))
}

func TestTrainerErrors(t *testing.T) {
	for name, opts := range map[string][]TrainerOption{
		"nolengths": {TrainerLengths()},
		"zero":      {TrainerLengths(2, 0)},
		"positive":  {TrainerDefaultWeight(0.5)},
		"nan":       {TrainerDefaultWeight(math.NaN())},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewTrainer(opts...)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}

	tr, err := NewTrainer()
	require.NoError(t, err)
	tr.AddWords("123", "")
	_, err = tr.Compile()
	assert.Error(t, err)

	_, err = Train(nil)
	assert.Error(t, err)
}

func TestTrain(t *testing.T) {
	s, err := Train([]io.Reader{
		strings.NewReader("international nation"),
		strings.NewReader("national"),
	}, TrainerLengths(4))
	require.NoError(t, err)
	assert.Equal(t, []int{4}, s.Lengths())
	assert.Equal(t, 3, s.Vocabulary())
	assert.InDelta(t, 1, s.Weight("atio"), 1e-12)
}
