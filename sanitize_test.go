package nostril

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	for _, tc := range []struct {
		in, out string
	}{
		{"Foo_Bar42", "foobar"},
		{"abcdef123", "abcdef"},
		{"ABCDEF", "abcdef"},
		{"get file\thistory\n", "getfilehistory"},
		{"x-y.z", "xyz"},
		{"naïve café", "navecaf"},
		{"1234 !?", ""},
		{"", ""},
	} {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.out, Sanitize(tc.in))
			assert.Equal(t, tc.out, SanitizeString(tc.in))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	chars := []rune("abcXYZ019 _-.!é道\t")
	for i := 0; i < 500; i++ {
		rs := make([]rune, rng.Intn(20))
		for j := range rs {
			rs[j] = chars[rng.Intn(len(chars))]
		}
		once := Sanitize(string(rs))
		assert.Equal(t, once, Sanitize(once))
		assert.True(t, ASCIILower.ContainsAll(once), once)
	}
}
