package gofunc

import "math/big"

// Comparator imposes a total ordering on T, returning a value <0, 0, or >0
// as a orders before, with, or after b.
//
// Every container in this module is parameterized by an explicit Comparator
// rather than requiring elements to be natively ordered, so that deeply
// nested values (trees of trees, necklaces of trees) compose.
type Comparator[T any] func(a, b T) int

// CompareInts is the Comparator for plain integers.
func CompareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// CompareSeqs orders two sequences lexicographically element-wise.
// A sequence that is a strict prefix of another orders before it.
func CompareSeqs[T any](cmp Comparator[T], a, b []T) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if d := cmp(a[i], b[i]); d != 0 {
			return d
		}
	}
	return len(a) - len(b)
}

// Enumerator is a restartable producer of canonical values.
//
// Each starts a fresh enumeration every call and invokes fn once per value,
// stopping early if fn returns false.  Cardinality reports how many values
// Each would produce, computed without enumerating.
type Enumerator[T any] interface {
	Each(fn func(v T) bool)
	Cardinality() *big.Int
}
