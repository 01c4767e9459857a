// Package necklaces represents and enumerates necklaces: equivalence
// classes of words under cyclic rotation, represented by the
// lexicographically smallest rotation.
package necklaces

import (
	"strings"

	"github.com/funcstruct-systems/gofunc/gofunc"
)

// Necklace is a word fixed in its canonical (smallest) rotation, together
// with its period.  Build one through New; a zero Necklace is the empty
// word.
type Necklace[T any] struct {
	cmp    gofunc.Comparator[T]
	word   []T
	period int
}

// New canonicalizes word into a Necklace.  The input is copied; the caller
// keeps ownership of its slice.
// Fails with gofunc.ErrEmptyContent on an empty word.
func New[T any](cmp gofunc.Comparator[T], word []T) (Necklace[T], error) {
	n := len(word)
	if n == 0 {
		return Necklace[T]{}, gofunc.ErrEmptyContent
	}
	k := leastRotation(cmp, word)
	canon := make([]T, n)
	copy(canon, word[k:])
	copy(canon[n-k:], word[:k])
	return Necklace[T]{
		cmp:    cmp,
		word:   canon,
		period: periodicity(cmp, canon),
	}, nil
}

// Len returns the number of beads.
func (nk Necklace[T]) Len() int {
	return len(nk.word)
}

// Period returns the smallest cyclic period of the word.
func (nk Necklace[T]) Period() int {
	return nk.period
}

// Degeneracy returns the number of rotations fixing the necklace,
// Len/Period.
func (nk Necklace[T]) Degeneracy() int {
	if nk.period == 0 {
		return 1
	}
	return len(nk.word) / nk.period
}

// Each visits the beads of the canonical rotation in order.
func (nk Necklace[T]) Each(fn func(bead T) bool) {
	for _, bead := range nk.word {
		if !fn(bead) {
			return
		}
	}
}

// Word returns a copy of the canonical rotation.
func (nk Necklace[T]) Word() []T {
	return append([]T{}, nk.word...)
}

// Compare orders necklaces lexicographically by canonical word, shorter
// words first on a shared prefix.
func (nk Necklace[T]) Compare(other Necklace[T]) int {
	cmp := nk.cmp
	if cmp == nil {
		cmp = other.cmp
	}
	return gofunc.CompareSeqs(cmp, nk.word, other.word)
}

// Equal reports whether both necklaces denote the same rotation class.
func (nk Necklace[T]) Equal(other Necklace[T]) bool {
	return nk.Compare(other) == 0
}

// Format renders the canonical text form "Necklace([a, b, a, b])" using
// beadStr for each bead.
func (nk Necklace[T]) Format(beadStr func(bead T) string) string {
	var b strings.Builder
	b.WriteString("Necklace([")
	for i, bead := range nk.word {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(beadStr(bead))
	}
	b.WriteString("])")
	return b.String()
}

// leastRotation returns the start index of the lexicographically smallest
// rotation of word (Booth's algorithm, O(n)).
func leastRotation[T any](cmp gofunc.Comparator[T], word []T) int {
	n := len(word)
	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		sj := word[j%n]
		i := f[j-k-1]
		for i != -1 && cmp(sj, word[(k+i+1)%n]) != 0 {
			if cmp(sj, word[(k+i+1)%n]) < 0 {
				k = j - i - 1
			}
			i = f[i]
		}
		if i == -1 && cmp(sj, word[(k+i+1)%n]) != 0 {
			if cmp(sj, word[k%n]) < 0 {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}
	return k % n
}

// periodicity returns the smallest p such that word is p-periodic, by
// growing a seed over the divisors of len(word) and rescanning only on
// mismatch.  O(n) overall.
func periodicity[T any](cmp gofunc.Comparator[T], word []T) int {
	n := len(word)
	if n == 0 {
		return 0
	}
	var seed []T
	l, p := 1, 1
	for p != n {
		for n%l != 0 {
			l++
		}
		p = l
		seed = append(seed, word[len(seed):p]...)
		stop := false
		for rep := p; rep < n && !stop; rep += p {
			for i := range seed {
				l = rep + i
				if cmp(word[l], seed[i]) != 0 {
					stop = true
					break
				}
			}
		}
		if !stop {
			break
		}
		l++
	}
	return p
}
