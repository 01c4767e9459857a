package necklaces

import (
	"math/big"

	"github.com/funcstruct-systems/gofunc/gofunc"
	"github.com/funcstruct-systems/gofunc/libfunc/combinat"
	"github.com/funcstruct-systems/gofunc/libfunc/multiset"
)

// FixedContentNecklaces enumerates every necklace whose bead multiset is
// exactly the given content.
type FixedContentNecklaces[T any] struct {
	content multiset.Multiset[T]
	cache   *combinat.DivisorCache
}

// NewFixedContent fails with gofunc.ErrEmptyContent if content is empty.
func NewFixedContent[T any](content multiset.Multiset[T]) (*FixedContentNecklaces[T], error) {
	return newFixedContent(content, combinat.NewDivisorCache())
}

func newFixedContent[T any](content multiset.Multiset[T], cache *combinat.DivisorCache) (*FixedContentNecklaces[T], error) {
	if content.Size() == 0 {
		return nil, gofunc.ErrEmptyContent
	}
	return &FixedContentNecklaces[T]{content: content, cache: cache}, nil
}

// Each emits each necklace once, in increasing canonical-word order, by
// Sawada's simple fixed-content recursion over index words.
func (fc *FixedContentNecklaces[T]) Each(fn func(nk Necklace[T]) bool) {
	elems, mults := fc.content.Split()
	cmp := fc.content.Comparator()
	n := fc.content.Size()
	k := len(elems)

	counts := append([]int{}, mults...)
	a := make([]int, n)

	emit := func() bool {
		word := make([]T, n)
		for i, idx := range a {
			word[i] = elems[idx]
		}
		nk, err := New(cmp, word)
		if err != nil {
			return false
		}
		return fn(nk)
	}

	// Sawada 2003: a[t-1] ranges over [a[t-p-1], k); p tracks the period of
	// the prefix; a completed word is a necklace iff p divides n.
	var gen func(t, p int) bool
	gen = func(t, p int) bool {
		if t > n {
			if n%p == 0 {
				return emit()
			}
			return true
		}
		for j := a[t-p-1]; j < k; j++ {
			if counts[j] == 0 {
				continue
			}
			a[t-1] = j
			counts[j]--
			tp := t
			if j == a[t-p-1] {
				tp = p
			}
			more := gen(t+1, tp)
			counts[j]++
			if !more {
				return false
			}
		}
		return true
	}

	// The smallest bead opens every canonical word.
	counts[0]--
	gen(2, 1)
}

// PeriodCount pairs a period with the number of necklaces having exactly
// that period.
type PeriodCount struct {
	Period int
	Count  *big.Int
}

// CountByPeriod counts the necklaces of each possible period without
// enumerating.  Possible periods are base*f for divisors f of the gcd of
// the multiplicities, with base = n/gcd; for each, the strings whose period
// divides it are a multinomial, and the strings of smaller exact period are
// subtracted before dividing by the period (each necklace of period p meets
// exactly p strings).
func (fc *FixedContentNecklaces[T]) CountByPeriod() []PeriodCount {
	_, mults := fc.content.Split()
	n := fc.content.Size()
	w := 0
	for _, m := range mults {
		w = combinat.GCD(w, m)
	}
	base := n / w

	factors := fc.cache.Divisors(w)
	exact := make(map[int]*big.Int, len(factors))
	out := make([]PeriodCount, 0, len(factors))
	parts := make([]int, len(mults))
	for _, f := range factors {
		for i, m := range mults {
			parts[i] = m * f / w
		}
		strings := combinat.Multinomial(parts)
		for _, f2 := range fc.cache.Divisors(f) {
			if f2 == f {
				continue
			}
			strings.Sub(strings, exact[f2])
		}
		exact[f] = strings
		period := base * f
		out = append(out, PeriodCount{
			Period: period,
			Count:  new(big.Int).Div(strings, big.NewInt(int64(period))),
		})
	}
	return out
}

// Cardinality returns the total necklace count over all periods.
func (fc *FixedContentNecklaces[T]) Cardinality() *big.Int {
	total := new(big.Int)
	for _, pc := range fc.CountByPeriod() {
		total.Add(total, pc.Count)
	}
	return total
}
