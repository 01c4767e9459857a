package rootedtrees

import (
	"math/big"
	"sort"

	"github.com/funcstruct-systems/gofunc/gofunc"
	"github.com/funcstruct-systems/gofunc/libfunc/multiset"
)

// DominantSequence is a LevelSequence in canonical form: at every node the
// child subtree sequences appear in non-increasing lexicographic order, so
// the whole sequence is the lexicographically largest ordering of its tree.
// Construct one only through a Canonicalizer (or NewDominantSequence).
type DominantSequence []int

// Canonicalizer converts any valid LevelSequence into the DominantSequence
// of its unlabelled tree.  Both strategies below produce byte-identical
// output for isomorphic trees; they differ only in cost.
type Canonicalizer func(ls LevelSequence) DominantSequence

// NewDominantSequence validates seq and canonicalizes it with the default
// (ranking) strategy.
func NewDominantSequence(seq []int) (DominantSequence, error) {
	ls, err := NewLevelSequence(seq)
	if err != nil {
		return nil, err
	}
	return CanonicalizeByRanking(ls), nil
}

// CanonicalizeBySorting recursively canonicalizes every branch and sorts
// branches in descending lexicographic order.  O(n^2 log n) in the worst
// case from repeated deep comparisons.
func CanonicalizeBySorting(ls LevelSequence) DominantSequence {
	branches := ls.Branches()
	doms := make([]DominantSequence, len(branches))
	for i, br := range branches {
		doms[i] = CanonicalizeBySorting(br)
	}
	sort.Slice(doms, func(i, j int) bool {
		return doms[i].Compare(doms[j]) > 0
	})
	out := make(DominantSequence, 1, len(ls))
	for _, d := range doms {
		for _, h := range d {
			out = append(out, h+1)
		}
	}
	return out
}

// CanonicalizeByRanking canonicalizes bottom-up: nodes with identical
// rooted-subtree shape share an integer rank, so sibling ordering never
// needs a deep lexicographic comparison.  O(n log n).
func CanonicalizeByRanking(ls LevelSequence) DominantSequence {
	n := len(ls)
	parents := ls.Parents()
	kids := ls.children()
	groups := ls.heightGroups()

	keys := make([]int, n)
	childKeys := make([][]int, n)

	// Working from the deepest level up, sort each level's nodes by the
	// (already-ranked) key lists of their children, then collapse each run
	// of identical key lists to a single integer rank.
	rank := n
	var below []int
	for h := len(groups) - 1; h >= 0; h-- {
		level := groups[h]
		for _, x := range below {
			childKeys[parents[x]] = append(childKeys[parents[x]], keys[x])
		}
		sort.SliceStable(level, func(i, j int) bool {
			return compareKeyLists(childKeys[level[i]], childKeys[level[j]]) > 0
		})
		for i := 0; i < len(level); {
			j := i
			for j < len(level) && compareKeyLists(childKeys[level[i]], childKeys[level[j]]) == 0 {
				j++
			}
			rank--
			for ; i < j; i++ {
				keys[level[i]] = rank
			}
		}
		below = level
	}

	// Rebuild the level sequence, visiting each node's children in
	// descending rank order.
	for _, c := range kids {
		sort.Slice(c, func(i, j int) bool { return keys[c[i]] < keys[c[j]] })
	}
	out := make(DominantSequence, 0, n)
	levels := make([]int, n)
	stack := []int{0}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, levels[x])
		for _, y := range kids[x] {
			stack = append(stack, y)
			levels[y] = levels[x] + 1
		}
	}
	return out
}

// compareKeyLists orders child key lists element-wise; a list extending a
// common prefix orders after it (more children dominates).
func compareKeyLists(a, b []int) int {
	return gofunc.CompareSeqs(gofunc.CompareInts, a, b)
}

// CompareTrees is the gofunc.Comparator for DominantSequences.
func CompareTrees(a, b DominantSequence) int {
	return gofunc.CompareSeqs(gofunc.CompareInts, a, b)
}

// Compare orders dominant sequences lexicographically.
func (ds DominantSequence) Compare(other DominantSequence) int {
	return CompareTrees(ds, other)
}

// Equal reports whether both sequences denote the same unlabelled tree.
func (ds DominantSequence) Equal(other DominantSequence) bool {
	return ds.Compare(other) == 0
}

// Len returns the node count.
func (ds DominantSequence) Len() int {
	return len(ds)
}

// Levels returns the underlying level sequence view.  Subsequences of a
// dominant sequence are themselves dominant, so no re-canonicalization is
// ever needed.
func (ds DominantSequence) Levels() LevelSequence {
	return LevelSequence(ds)
}

// Branches returns the root's child subtrees, which inherit canonical form.
func (ds DominantSequence) Branches() []DominantSequence {
	raw := LevelSequence(ds).Branches()
	branches := make([]DominantSequence, len(raw))
	for i, br := range raw {
		branches[i] = DominantSequence(br)
	}
	return branches
}

// Chop returns the Multiset of the root's child subtrees.
func (ds DominantSequence) Chop() multiset.Multiset[DominantSequence] {
	branches := ds.Branches()
	return multiset.New(CompareTrees, branches...)
}

// Degeneracy returns the order of the tree's automorphism group: the
// branch multiset degeneracy (interchangeable identical subtrees) times the
// product of the distinct branches' own degeneracies.
func (ds DominantSequence) Degeneracy() *big.Int {
	chopped := ds.Chop()
	deg := chopped.Degeneracy()
	chopped.Each(func(branch DominantSequence, count int) bool {
		sub := branch.Degeneracy()
		deg.Mul(deg, sub.Exp(sub, big.NewInt(int64(count)), nil))
		return true
	})
	return deg
}

// String renders the canonical text form "DominantSequence([0, 1, 1])".
func (ds DominantSequence) String() string {
	return LevelSequence(ds).format("DominantSequence")
}

// AppendEncodingTo appends a canonical binary encoding of ds: the node
// count followed by each height, all varints.
func (ds DominantSequence) AppendEncodingTo(buf []byte) []byte {
	buf = gofunc.AppendUvarint(buf, uint64(len(ds)))
	for _, h := range ds {
		buf = gofunc.AppendUvarint(buf, uint64(h))
	}
	return buf
}

// DecodeSequence reads an encoding made by AppendEncodingTo, returning the
// sequence and the remaining bytes.
func DecodeSequence(buf []byte) (DominantSequence, []byte, error) {
	count, buf, err := gofunc.ReadUvarint(buf)
	if err != nil {
		return nil, buf, err
	}
	ds := make(DominantSequence, count)
	for i := range ds {
		var h uint64
		h, buf, err = gofunc.ReadUvarint(buf)
		if err != nil {
			return nil, buf, err
		}
		ds[i] = int(h)
	}
	if _, err := NewLevelSequence(ds); err != nil {
		return nil, buf, gofunc.ErrUnmarshal
	}
	return ds, buf, nil
}
