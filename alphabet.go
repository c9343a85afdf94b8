package nostril

import (
	"math"
	"unicode/utf8"
)

const lowerLetters = "abcdefghijklmnopqrstuvwxyz"

// ASCIILower is the alphabet every sanitized string is drawn from.
var ASCIILower = NewAlphabet([]rune(lowerLetters))

// Alphabet assigns a dense index to each rune it contains. Runes below
// utf8.RuneSelf are resolved through a fixed table; anything wider falls
// back to a map.
type Alphabet struct {
	ascii [utf8.RuneSelf]int16
	wide  map[rune]int
	runes []rune
}

func NewAlphabet(runes []rune) Alphabet {
	al := Alphabet{
		runes: make([]rune, 0, len(runes)),
	}
	for i := range al.ascii {
		al.ascii[i] = -1
	}
	for _, rn := range runes {
		al.add(rn)
	}
	return al
}

func (al *Alphabet) add(rn rune) {
	if al.Find(rn) >= 0 {
		return
	}
	pos := len(al.runes)
	if rn >= 0 && rn < utf8.RuneSelf {
		al.ascii[rn] = int16(pos)
	} else {
		if al.wide == nil {
			al.wide = make(map[rune]int)
		}
		al.wide[rn] = pos
	}
	al.runes = append(al.runes, rn)
}

// Find returns the index of rn, or -1 if rn is not part of the alphabet.
func (al *Alphabet) Find(rn rune) int {
	if rn >= 0 && rn < utf8.RuneSelf {
		return int(al.ascii[rn])
	}
	if pos, ok := al.wide[rn]; ok {
		return pos
	}
	return -1
}

func (al *Alphabet) Contains(rn rune) bool {
	return al.Find(rn) >= 0
}

// ContainsAll reports whether every rune of s belongs to the alphabet.
func (al *Alphabet) ContainsAll(s string) bool {
	for _, r := range s {
		if al.Find(r) < 0 {
			return false
		}
	}
	return true
}

func (al *Alphabet) Size() int {
	return len(al.runes)
}

func (al *Alphabet) Runes() []rune {
	out := make([]rune, len(al.runes))
	copy(out, al.runes)
	return out
}

// Combinations is the number of distinct n-grams of length n that can be
// spelled with the alphabet.
func (al *Alphabet) Combinations(n int) float64 {
	if n < 1 {
		return 0
	}
	return math.Pow(float64(len(al.runes)), float64(n))
}
