package rootedtrees

import (
	"math/big"

	"github.com/funcstruct-systems/gofunc/gofunc"
	"github.com/funcstruct-systems/gofunc/libfunc/combinat"
	"github.com/funcstruct-systems/gofunc/libfunc/multiset"
)

// Forest is an unordered collection of unlabelled rooted trees.
type Forest = multiset.Multiset[DominantSequence]

// NewForest builds a Forest from trees.
func NewForest(trees ...DominantSequence) Forest {
	return multiset.New(CompareTrees, trees...)
}

// TreeEnumerator emits the DominantSequence of every unlabelled rooted tree
// on exactly n nodes, each once, in decreasing lexicographic order.
type TreeEnumerator struct {
	n     int
	cache *combinat.DivisorCache
}

// NewTreeEnumerator fails with gofunc.ErrInvalidSize if n < 1.
func NewTreeEnumerator(n int) (*TreeEnumerator, error) {
	return newTreeEnumerator(n, combinat.NewDivisorCache())
}

func newTreeEnumerator(n int, cache *combinat.DivisorCache) (*TreeEnumerator, error) {
	if n < 1 {
		return nil, gofunc.ErrInvalidSize
	}
	return &TreeEnumerator{n: n, cache: cache}, nil
}

// Each walks the trees by the Beyer-Hedetniemi successor step: from the
// path tree [0,1,...,n-1], repeatedly find the rightmost node p above
// height 1 and its parent q, then overwrite the suffix from p onward by
// cyclically repeating the window starting at q.  Amortized O(1) per tree;
// terminates at the star [0,1,1,...,1].
func (te *TreeEnumerator) Each(fn func(ds DominantSequence) bool) {
	n := te.n
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	emit := func() bool {
		return fn(append(DominantSequence{}, seq...))
	}
	if !emit() {
		return
	}
	if n < 3 {
		return
	}
	for seq[1] != seq[2] {
		p := n - 1
		for seq[p] == seq[1] {
			p--
		}
		q := p - 1
		for seq[q] >= seq[p] {
			q--
		}
		for i := p; i < n; i++ {
			seq[i] = seq[i-(p-q)]
		}
		if !emit() {
			return
		}
	}
}

// Cardinality counts the trees without enumerating, by the recurrence
// T[m] = (1/(m-1)) * sum_{i=1..m-1} (sum_{d|i} d*T[d]) * T[m-i]
// with T[1] = 1 (OEIS A000081).
func (te *TreeEnumerator) Cardinality() *big.Int {
	return treeCounts(te.n, te.cache)[te.n]
}

func treeCounts(n int, cache *combinat.DivisorCache) []*big.Int {
	T := make([]*big.Int, n+1)
	T[0] = big.NewInt(0)
	if n >= 1 {
		T[1] = big.NewInt(1)
	}
	s := new(big.Int)
	term := new(big.Int)
	for m := 2; m <= n; m++ {
		total := new(big.Int)
		for i := 1; i < m; i++ {
			s.SetInt64(0)
			for _, d := range cache.Divisors(i) {
				term.Mul(T[d], big.NewInt(int64(d)))
				s.Add(s, term)
			}
			total.Add(total, term.Mul(s, T[m-i]))
		}
		T[m] = total.Div(total, big.NewInt(int64(m-1)))
	}
	return T
}

// ForestEnumerator emits every Forest on exactly n nodes: a forest on n
// nodes is a tree on n+1 nodes with the root removed.
type ForestEnumerator struct {
	trees *TreeEnumerator
}

// NewForestEnumerator fails with gofunc.ErrInvalidSize if n < 0.
func NewForestEnumerator(n int) (*ForestEnumerator, error) {
	if n < 0 {
		return nil, gofunc.ErrInvalidSize
	}
	te, err := NewTreeEnumerator(n + 1)
	if err != nil {
		return nil, err
	}
	return &ForestEnumerator{trees: te}, nil
}

func (fe *ForestEnumerator) Each(fn func(f Forest) bool) {
	fe.trees.Each(func(ds DominantSequence) bool {
		return fn(ds.Chop())
	})
}

func (fe *ForestEnumerator) Cardinality() *big.Int {
	return fe.trees.Cardinality()
}

// PartitionForests emits every Forest whose tree sizes realize the given
// multiset of sizes: an unordered combination-with-repetition from
// TreeEnumerator(size) per distinct size, cartesian-producted across the
// distinct sizes.
type PartitionForests struct {
	sizes multiset.Multiset[int]
	cache *combinat.DivisorCache
}

// NewPartitionForests fails with gofunc.ErrInvalidSize if any size is < 1.
func NewPartitionForests(sizes multiset.Multiset[int]) (*PartitionForests, error) {
	return newPartitionForests(sizes, combinat.NewDivisorCache())
}

func newPartitionForests(sizes multiset.Multiset[int], cache *combinat.DivisorCache) (*PartitionForests, error) {
	ok := true
	sizes.Each(func(size, count int) bool {
		ok = size >= 1
		return ok
	})
	if !ok {
		return nil, gofunc.ErrInvalidSize
	}
	return &PartitionForests{sizes: sizes, cache: cache}, nil
}

func (pf *PartitionForests) Each(fn func(f Forest) bool) {
	distinct, mults := pf.sizes.Split()

	// Materialize the tree pool per distinct size once; each pool is then
	// sampled by index combinations with repetition.
	pools := make([][]DominantSequence, len(distinct))
	for i, size := range distinct {
		te, _ := newTreeEnumerator(size, pf.cache)
		te.Each(func(ds DominantSequence) bool {
			pools[i] = append(pools[i], ds)
			return true
		})
	}

	var trees []DominantSequence
	var product func(level int) bool
	product = func(level int) bool {
		if level == len(distinct) {
			return fn(NewForest(trees...))
		}
		return combinat.CombinationsWR(len(pools[level]), mults[level], func(combo []int) bool {
			mark := len(trees)
			for _, idx := range combo {
				trees = append(trees, pools[level][idx])
			}
			more := product(level + 1)
			trees = trees[:mark]
			return more
		})
	}
	product(0)
}

func (pf *PartitionForests) Cardinality() *big.Int {
	total := big.NewInt(1)
	pf.sizes.Each(func(size, count int) bool {
		te, _ := newTreeEnumerator(size, pf.cache)
		total.Mul(total, combinat.Multichoose(te.Cardinality(), count))
		return true
	})
	return total
}
