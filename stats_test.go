package nostril

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStats(t testing.TB) *Stats {
	t.Helper()
	s, err := NewStats(map[string]float64{
		"ab":   1,
		"bc":   0.5,
		"cd":   0.25,
		"abc":  1,
		"bcd":  0.5,
		"abcd": 1,
	}, StatsVocabulary(3), StatsNorms(map[int]float64{2: 1.5, 3: 1, 4: 0.5}))
	require.NoError(t, err)
	return s
}

func TestNewStats(t *testing.T) {
	s := testStats(t)
	assert.Equal(t, []int{2, 3, 4}, s.Lengths())
	assert.True(t, s.HasLength(3))
	assert.False(t, s.HasLength(5))
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, 3, s.Vocabulary())
	assert.Equal(t, 0.25, s.MinWeight())
	assert.Equal(t, float64(DefaultUnseenWeight), s.DefaultWeight())
	assert.Equal(t, 1.5, s.Norm(2))
	assert.Equal(t, float64(0), s.Norm(9))

	assert.Equal(t, 0.5, s.Weight("bc"))
	assert.Equal(t, s.DefaultWeight(), s.Weight("zz"))

	w, ok := s.Lookup("abc")
	assert.True(t, ok)
	assert.Equal(t, float64(1), w)
	_, ok = s.Lookup("zzz")
	assert.False(t, ok)

	assert.InDelta(t, 3.0/676, s.Coverage(2), 1e-12)
}

func TestNewStatsCopiesInput(t *testing.T) {
	in := map[string]float64{"ab": 1}
	s, err := NewStats(in)
	require.NoError(t, err)
	in["ab"] = 0.1
	in["cd"] = 1
	assert.Equal(t, float64(1), s.Weight("ab"))
	assert.Equal(t, 1, s.Len())

	lens := s.Lengths()
	lens[0] = 99
	assert.Equal(t, []int{2}, s.Lengths())
}

func TestNewStatsInvalid(t *testing.T) {
	for name, tc := range map[string]struct {
		weights map[string]float64
		opts    []StatsOption
	}{
		"empty":        {weights: map[string]float64{}},
		"emptykey":     {weights: map[string]float64{"": 1}},
		"uppercase":    {weights: map[string]float64{"Ab": 1}},
		"digit":        {weights: map[string]float64{"a1": 1}},
		"nan":          {weights: map[string]float64{"ab": math.NaN()}},
		"inf":          {weights: map[string]float64{"ab": math.Inf(1)}},
		"defaultequal": {weights: map[string]float64{"ab": -1}},
		"defaultabove": {weights: map[string]float64{"ab": 0.2}, opts: []StatsOption{StatsDefaultWeight(0.5)}},
		"defaultnan":   {weights: map[string]float64{"ab": 0.2}, opts: []StatsOption{StatsDefaultWeight(math.NaN())}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewStats(tc.weights, tc.opts...)
			assert.Error(t, err)
		})
	}
}

func TestNewStatsNegativeWeightsWithLowerDefault(t *testing.T) {
	s, err := NewStats(map[string]float64{"ab": -0.5, "cd": 2}, StatsDefaultWeight(-3))
	require.NoError(t, err)
	assert.Equal(t, -0.5, s.MinWeight())
	assert.Equal(t, float64(-3), s.Weight("xy"))
}
