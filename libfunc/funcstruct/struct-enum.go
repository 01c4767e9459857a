package funcstruct

import (
	"math/big"

	"github.com/funcstruct-systems/gofunc/gofunc"
	"github.com/funcstruct-systems/gofunc/libfunc/combinat"
	"github.com/funcstruct-systems/gofunc/libfunc/multiset"
	"github.com/funcstruct-systems/gofunc/libfunc/necklaces"
	"github.com/funcstruct-systems/gofunc/libfunc/rootedtrees"
)

// CycleType is the multiset of cycle lengths of a structure.
type CycleType = multiset.Multiset[int]

// StructEnumerator emits every endofunction structure on n nodes, each
// once, optionally restricted to a given cycle type.
type StructEnumerator struct {
	n         int
	cycleType *CycleType
	cache     *combinat.DivisorCache
}

// NewStructEnumerator fails with gofunc.ErrInvalidSize if n < 0.
func NewStructEnumerator(n int) (*StructEnumerator, error) {
	if n < 0 {
		return nil, gofunc.ErrInvalidSize
	}
	return &StructEnumerator{n: n, cache: combinat.NewDivisorCache()}, nil
}

// NewCycleTypeEnumerator restricts the enumeration to structures whose
// cycle lengths are exactly cycleType.  A cycle type needing more nodes
// than n is not an error; the enumeration is simply empty.
// Fails with gofunc.ErrInvalidSize if n < 0 or any cycle length is < 1.
func NewCycleTypeEnumerator(n int, cycleType CycleType) (*StructEnumerator, error) {
	se, err := NewStructEnumerator(n)
	if err != nil {
		return nil, err
	}
	ok := true
	cycleType.Each(func(l, m int) bool {
		ok = l >= 1
		return ok
	})
	if !ok {
		return nil, gofunc.ErrInvalidSize
	}
	se.cycleType = &cycleType
	return se, nil
}

// Each visits the structures grouped by cyclic node count, then by cycle
// type, distributing the remaining nodes over the cycles as attached
// trees.
func (se *StructEnumerator) Each(fn func(fs Funcstruct) bool) {
	if se.cycleType != nil {
		se.eachOfCycleType(*se.cycleType, fn)
		return
	}
	for i := 1; i <= se.n; i++ {
		more := true
		combinat.Partitions(i, func(parts []int) bool {
			more = se.eachOfCycleType(multiset.New(gofunc.CompareInts, parts...), fn)
			return more
		})
		if !more {
			return
		}
	}
}

func (se *StructEnumerator) eachOfCycleType(ct CycleType, fn func(fs Funcstruct) bool) bool {
	cyclic := 0
	ct.Each(func(l, m int) bool {
		cyclic += l * m
		return true
	})
	treeNodes := se.n - cyclic
	if treeNodes < 0 {
		return true
	}
	lengths, mults := ct.Split()
	cont := true
	// Distribute the acyclic nodes over the distinct cycle lengths in every
	// ordered way, then take the cartesian product of the per-length
	// component groups.
	combinat.WeakCompositions(treeNodes, len(lengths), func(comp []int) bool {
		var bundle func(i int, acc []TreeNecklace) bool
		bundle = func(i int, acc []TreeNecklace) bool {
			if i == len(lengths) {
				return fn(New(multiset.New(CompareTreeNecklaces, acc...)))
			}
			return se.eachComponentGroup(comp[i], lengths[i], mults[i], func(group []TreeNecklace) bool {
				return bundle(i+1, append(append([]TreeNecklace{}, acc...), group...))
			})
		}
		cont = bundle(0, nil)
		return cont
	})
	return cont
}

// eachComponentGroup emits every unordered way to build m cycles of length
// l carrying c extra tree nodes between them.
func (se *StructEnumerator) eachComponentGroup(c, l, m int, fn func(group []TreeNecklace) bool) bool {
	cont := true
	combinat.FixedLengthPartitions(c+m, m, func(parts []int) bool {
		sizes := multiset.New(gofunc.CompareInts, parts...)
		distinct, counts := sizes.Split()

		pools := make([][]TreeNecklace, len(distinct))
		for i, y := range distinct {
			pools[i] = se.attachmentForests(y-1, l)
		}

		var group []TreeNecklace
		var product func(level int) bool
		product = func(level int) bool {
			if level == len(pools) {
				return fn(group)
			}
			return combinat.CombinationsWR(len(pools[level]), counts[level], func(combo []int) bool {
				mark := len(group)
				for _, idx := range combo {
					group = append(group, pools[level][idx])
				}
				more := product(level + 1)
				group = group[:mark]
				return more
			})
		}
		cont = product(0)
		return cont
	})
	return cont
}

// attachmentForests materializes every way to grow rooted trees from t
// free nodes and hang them on a cycle of length l.
func (se *StructEnumerator) attachmentForests(t, l int) []TreeNecklace {
	var out []TreeNecklace
	combinat.FixedLengthPartitions(t+l, l, func(parts []int) bool {
		sizes := multiset.New(gofunc.CompareInts, parts...)
		pf, err := rootedtrees.NewPartitionForests(sizes)
		if err != nil {
			return true
		}
		pf.Each(func(f rootedtrees.Forest) bool {
			fc, err := necklaces.NewFixedContent(f)
			if err != nil {
				return true
			}
			fc.Each(func(nk TreeNecklace) bool {
				out = append(out, nk)
				return true
			})
			return true
		})
		return true
	})
	return out
}

// Cardinality counts the structures without enumerating, using the exact
// rational closed form of de Bruijn (Enumeration of Mapping Patterns,
// J. Combin. Theory 12, 1972): a sum over the partitions of n, in exponent
// vector form, of products over the part sizes.  With a cycle type
// restriction the count is taken by enumeration instead.
func (se *StructEnumerator) Cardinality() *big.Int {
	if se.cycleType != nil {
		count := new(big.Int)
		one := big.NewInt(1)
		se.Each(func(fs Funcstruct) bool {
			count.Add(count, one)
			return true
		})
		return count
	}
	if se.n == 0 {
		return new(big.Int)
	}
	total := new(big.Rat)
	p := new(big.Rat)
	factor := new(big.Rat)
	num := new(big.Int)
	denom := new(big.Int)
	combinat.TuplePartitions(se.n, func(b []int) bool {
		p.SetInt64(1)
		for i := 1; i <= se.n; i++ {
			if b[i] == 0 {
				continue
			}
			s := 0
			for _, d := range se.cache.Divisors(i) {
				s += d * b[d]
			}
			bi := big.NewInt(int64(b[i]))
			num.Exp(big.NewInt(int64(s)), bi, nil)
			denom.Exp(big.NewInt(int64(i)), bi, nil)
			denom.Mul(denom, combinat.Factorial(b[i]))
			p.Mul(p, factor.SetFrac(num, denom))
		}
		total.Add(total, p)
		return true
	})
	return new(big.Int).Set(total.Num())
}
