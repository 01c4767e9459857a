// Package multiset provides the Multiset type: an immutable mapping from
// elements to positive multiplicities, with structural equality.  Multisets
// are the currency type of this module; trees, necklaces and endofunction
// structures are all built from them.
package multiset

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/funcstruct-systems/gofunc/gofunc"
	"github.com/funcstruct-systems/gofunc/libfunc/combinat"
)

// Multiset is an unordered collection with repetition.  Elements are kept in
// a red-black tree ordered by the supplied Comparator, so iteration order,
// Split views, text forms and encodings are all canonical.
//
// A Multiset is built once and never mutated; copies are interchangeable.
type Multiset[T any] struct {
	cmp  gofunc.Comparator[T]
	tree *redblacktree.Tree
	size int
}

// New builds a Multiset from a sequence of elements; repeats accumulate
// multiplicity.
func New[T any](cmp gofunc.Comparator[T], elems ...T) Multiset[T] {
	ms := empty(cmp)
	for _, el := range elems {
		ms.add(el, 1)
	}
	return ms
}

// FromPairs builds a Multiset from parallel element and multiplicity slices.
// Fails with gofunc.ErrInvalidCount if any multiplicity is not positive, or
// gofunc.ErrTypeMismatch if the slices disagree in length.
func FromPairs[T any](cmp gofunc.Comparator[T], elems []T, counts []int) (Multiset[T], error) {
	if len(elems) != len(counts) {
		return Multiset[T]{}, gofunc.ErrTypeMismatch
	}
	ms := empty(cmp)
	for i, el := range elems {
		if counts[i] < 1 {
			return Multiset[T]{}, gofunc.ErrInvalidCount
		}
		ms.add(el, counts[i])
	}
	return ms, nil
}

func empty[T any](cmp gofunc.Comparator[T]) Multiset[T] {
	return Multiset[T]{
		cmp: cmp,
		tree: redblacktree.NewWith(func(a, b interface{}) int {
			return cmp(a.(T), b.(T))
		}),
	}
}

func (ms *Multiset[T]) add(el T, count int) {
	if prev, found := ms.tree.Get(el); found {
		ms.tree.Put(el, prev.(int)+count)
	} else {
		ms.tree.Put(el, count)
	}
	ms.size += count
}

// Comparator returns the element ordering this Multiset was built with.
func (ms Multiset[T]) Comparator() gofunc.Comparator[T] {
	return ms.cmp
}

// Size returns the number of elements counted with multiplicity.
func (ms Multiset[T]) Size() int {
	return ms.size
}

// Distinct returns the number of distinct elements.
func (ms Multiset[T]) Distinct() int {
	if ms.tree == nil {
		return 0
	}
	return ms.tree.Size()
}

// Count returns the multiplicity of el, or 0 if absent.
func (ms Multiset[T]) Count(el T) int {
	if ms.tree == nil {
		return 0
	}
	if count, found := ms.tree.Get(el); found {
		return count.(int)
	}
	return 0
}

// Each visits every (element, multiplicity) pair in ascending element order,
// stopping early if fn returns false.
func (ms Multiset[T]) Each(fn func(el T, count int) bool) {
	if ms.tree == nil {
		return
	}
	it := ms.tree.Iterator()
	for it.Next() {
		if !fn(it.Key().(T), it.Value().(int)) {
			return
		}
	}
}

// EachDesc visits every (element, multiplicity) pair in descending element
// order.
func (ms Multiset[T]) EachDesc(fn func(el T, count int) bool) {
	if ms.tree == nil {
		return
	}
	it := ms.tree.Iterator()
	for it.End(); it.Prev(); {
		if !fn(it.Key().(T), it.Value().(int)) {
			return
		}
	}
}

// Elements visits each element once per unit of multiplicity, in ascending
// element order.
func (ms Multiset[T]) Elements(fn func(el T) bool) {
	ms.Each(func(el T, count int) bool {
		for i := 0; i < count; i++ {
			if !fn(el) {
				return false
			}
		}
		return true
	})
}

// Split returns parallel views of the distinct elements (ascending) and
// their multiplicities.
func (ms Multiset[T]) Split() (elems []T, counts []int) {
	elems = make([]T, 0, ms.Distinct())
	counts = make([]int, 0, ms.Distinct())
	ms.Each(func(el T, count int) bool {
		elems = append(elems, el)
		counts = append(counts, count)
		return true
	})
	return elems, counts
}

// Degeneracy returns the product of the factorials of the multiplicities:
// the number of orderings that collapse to this same Multiset.
func (ms Multiset[T]) Degeneracy() *big.Int {
	_, counts := ms.Split()
	return combinat.FactorialProd(counts)
}

// Compare orders two multisets lexicographically over their sorted
// (element, multiplicity) pairs.  Both must share an element ordering.
func (ms Multiset[T]) Compare(other Multiset[T]) int {
	a, ac := ms.Split()
	b, bc := other.Split()
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if d := ms.cmp(a[i], b[i]); d != 0 {
			return d
		}
		if d := ac[i] - bc[i]; d != 0 {
			return d
		}
	}
	return len(a) - len(b)
}

// Equal reports whether both multisets hold the same elements with the same
// multiplicities.
func (ms Multiset[T]) Equal(other Multiset[T]) bool {
	return ms.size == other.size && ms.Compare(other) == 0
}

// Format renders the canonical text form "{a, b^2}", elements in descending
// order, using elemStr for each element.  Multiplicities above one render
// as an exponent.
func (ms Multiset[T]) Format(elemStr func(el T) string) string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	ms.EachDesc(func(el T, count int) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(elemStr(el))
		if count > 1 {
			b.WriteByte('^')
			b.WriteString(strconv.Itoa(count))
		}
		return true
	})
	b.WriteByte('}')
	return b.String()
}
