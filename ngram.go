package nostril

// NGrams returns every substring of s that is exactly n bytes long, left to
// right with a stride of one. Repeated n-grams are kept. If s is shorter
// than n the result is empty.
//
// s is expected to be sanitized; NGrams works on bytes.
func NGrams(s string, n int) []string {
	if n < 1 || len(s) < n {
		return nil
	}
	out := make([]string, 0, len(s)-n+1)
	for i := 0; i+n <= len(s); i++ {
		out = append(out, s[i:i+n])
	}
	return out
}

// ngramCount is len(NGrams(s, n)) without the allocation.
func ngramCount(s string, n int) int {
	if n < 1 || len(s) < n {
		return 0
	}
	return len(s) - n + 1
}
