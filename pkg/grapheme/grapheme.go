// Package grapheme provides grapheme-cluster-safe counting, indexing and
// iteration over a line of text. Every cursor column and length elsewhere
// in this module is expressed in graphemes, never bytes or code points, so
// combining marks, emoji, and wide characters behave sensibly.
package grapheme

import "github.com/rivo/uniseg"

// Split returns the extended grapheme clusters of s, in order.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		out = append(out, cluster)
	}
	return out
}

// Count returns the number of extended grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// ByteIndex returns the byte offset in s at which grapheme column x begins.
// x == Count(s) returns len(s) (the append position). Panics if x >
// Count(s); a negative x returns 0. Callers are expected to clamp first,
// mirroring the rest of this package's "caller validates, callee trusts"
// contract.
func ByteIndex(s string, x int) int {
	if x == 0 {
		return 0
	}
	state := -1
	rest := s
	offset := 0
	for i := 0; i < x; i++ {
		if len(rest) == 0 {
			panic("grapheme: ByteIndex out of range")
		}
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
	}
	return offset
}

// Insert inserts s into the grapheme stream of base at column x and returns
// the result. x == Count(base) appends.
func Insert(base string, x int, s string) string {
	idx := ByteIndex(base, x)
	return base[:idx] + s + base[idx:]
}

// RemoveAt removes the grapheme at column x from s and returns the result.
// x == Count(s) (nothing to remove) is a NOP.
func RemoveAt(s string, x int) string {
	n := Count(s)
	if x < 0 || x >= n {
		return s
	}
	start := ByteIndex(s, x)
	end := ByteIndex(s, x+1)
	return s[:start] + s[end:]
}
