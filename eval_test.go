package nostril

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEvaluateLabeled(t *testing.T) {
	d := testDetector(t)
	samples := []Sample{
		{Text: "abcd", Nonsense: false},
		{Text: "zzzz", Nonsense: true},
		{Text: "zz", Nonsense: true},
		{Text: "ABCD!", Nonsense: true},
		{Text: "zzzzzz", Nonsense: false},
		{Text: "bcd", Nonsense: false},
	}

	for _, workers := range []int{0, 1, 3} {
		rep, err := EvaluateLabeled(context.Background(), d, samples, workers)
		require.NoError(t, err)
		assert.Equal(t, 6, rep.Total)
		assert.Equal(t, 1, rep.Skipped)
		assert.Equal(t, 5, rep.Evaluated())
		assert.Equal(t, 2, rep.Nonsense)
		assert.Equal(t, 3, rep.Real)
		assert.Equal(t, 1, rep.FalsePositives)
		assert.Equal(t, 1, rep.FalseNegatives)
		assert.InDelta(t, 0.6, rep.Accuracy(), 1e-12)
		require.Len(t, rep.Mistakes, 2)
		assert.Equal(t, "ABCD!", rep.Mistakes[0].Text)
		assert.False(t, rep.Mistakes[0].Nonsense)
		assert.Equal(t, "zzzzzz", rep.Mistakes[1].Text)
		assert.True(t, rep.Mistakes[1].Nonsense)
	}
}

func TestEvaluateUnlabeled(t *testing.T) {
	d := testDetector(t)
	rep, err := EvaluateUnlabeled(context.Background(), d, []string{"abcd", "zzzz", "a", "abcdab", "abzz"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Total)
	assert.Equal(t, 1, rep.Skipped)
	assert.Equal(t, 2, rep.Nonsense)
	assert.Equal(t, 2, rep.Real)
	require.Len(t, rep.Flagged, 2)
	assert.Equal(t, "zzzz", rep.Flagged[0].Text)
	assert.Equal(t, "abzz", rep.Flagged[1].Text)
	assert.Empty(t, rep.Mistakes)
}

func TestEvaluateCanceled(t *testing.T) {
	d := testDetector(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EvaluateUnlabeled(ctx, d, []string{"abcd", "zzzz"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateEmpty(t *testing.T) {
	rep, err := EvaluateLabeled(context.Background(), testDetector(t), nil, 0)
	require.NoError(t, err)
	assert.Zero(t, rep.Total)
	assert.Zero(t, rep.Accuracy())
}

func TestEvaluateDefaultDetector(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)
	rep, err := EvaluateLabeled(context.Background(), d, []Sample{
		{Text: "international", Nonsense: false},
		{Text: "getFileHistory", Nonsense: false},
		{Text: "qwxzjk", Nonsense: true},
		{Text: "xk", Nonsense: true},
	}, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Skipped)
	assert.Equal(t, float64(1), rep.Accuracy())
}

func TestReadSamples(t *testing.T) {
	samples, err := ReadSamples(strings.NewReader("# comment\nn\tqwxzjk\r\nreal\tget file\n\n0\thello\nNONSENSE\tzzz\n"))
	require.NoError(t, err)
	assert.Equal(t, []Sample{
		{Text: "qwxzjk", Nonsense: true},
		{Text: "get file", Nonsense: false},
		{Text: "hello", Nonsense: false},
		{Text: "zzz", Nonsense: true},
	}, samples)

	_, err = ReadSamples(strings.NewReader("qwxzjk\n"))
	assert.Error(t, err)

	_, err = ReadSamples(strings.NewReader("maybe\tqwxzjk\n"))
	assert.Error(t, err)
}

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("  foo \n\n\tbar\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar"}, lines)
}
