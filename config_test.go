package nostril

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "nostril.toml", `
lengths = [3, 4]
threshold = -0.2
min_length = 8
cache_size = 128

[length_weights]
3 = 1.5
4 = 0.5
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Lengths:       []int{3, 4},
		LengthWeights: map[int]float64{3: 1.5, 4: 0.5},
		Threshold:     -0.2,
		MinLength:     8,
		CacheSize:     128,
	}, cfg)
}

func TestLoadConfigYAMLPartial(t *testing.T) {
	path := writeFile(t, "nostril.yaml", `
threshold: 0.1
length_weights:
  "2": 4
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	want := DefaultConfig()
	want.Threshold = 0.1
	want.LengthWeights = map[int]float64{2: 4}
	assert.Equal(t, want, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeFile(t, "nostril.json", `{}`))
	assert.ErrorIs(t, err, ErrConfig)

	_, err = LoadConfig(writeFile(t, "bad.toml", `lengths = "two"`))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yml", "length_weights:\n  two: 1\n"))
	assert.ErrorIs(t, err, ErrConfig)
}

func TestConfigFileDrivesDetector(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "n.toml", "lengths = [2, 3]\nmin_length = 3\nthreshold = 0.0\n"))
	require.NoError(t, err)

	d, err := NewDetector(testStats(t), WithConfig(cfg))
	require.NoError(t, err)
	isNonsense, err := d.Nonsense("zzz")
	require.NoError(t, err)
	assert.True(t, isNonsense)

	cfg.Lengths = []int{2, 7}
	_, err = NewDetector(testStats(t), WithConfig(cfg))
	assert.ErrorIs(t, err, ErrUnsupportedLength)
}

func TestConfigValidateWithoutStats(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate(nil))

	cfg := DefaultConfig()
	cfg.Lengths = []int{50}
	cfg.MinLength = 50
	assert.NoError(t, cfg.Validate(nil))
}
