package rootedtrees

import (
	"math/big"

	"github.com/funcstruct-systems/gofunc/libfunc/multiset"
)

// RootedTree is the unordered dual of DominantSequence: a tree is the
// Multiset of its child subtrees, and a single node is the tree with an
// empty child multiset.  Conversion to and from DominantSequence is
// lossless and mutually inverse.
type RootedTree struct {
	children multiset.Multiset[RootedTree]
}

// NewRootedTree builds a tree from its child subtrees.
func NewRootedTree(children ...RootedTree) RootedTree {
	return RootedTree{children: multiset.New(CompareRootedTrees, children...)}
}

// TreeFromSequence rebuilds the recursive form of a level sequence.
func TreeFromSequence(ls LevelSequence) RootedTree {
	branches := ls.Branches()
	children := make([]RootedTree, len(branches))
	for i, br := range branches {
		children[i] = TreeFromSequence(br)
	}
	return NewRootedTree(children...)
}

// CompareRootedTrees is the gofunc.Comparator for RootedTrees, recursing
// through the child multisets.
func CompareRootedTrees(a, b RootedTree) int {
	return a.children.Compare(b.children)
}

// Children returns the child subtree multiset.
func (t RootedTree) Children() multiset.Multiset[RootedTree] {
	return t.children
}

// Len returns the node count, the root included.
func (t RootedTree) Len() int {
	n := 1
	t.children.Each(func(child RootedTree, count int) bool {
		n += count * child.Len()
		return true
	})
	return n
}

// Equal reports whether both values denote the same unlabelled tree.
func (t RootedTree) Equal(other RootedTree) bool {
	return CompareRootedTrees(t, other) == 0
}

// OrderedForm returns the canonical ordered representation.
func (t RootedTree) OrderedForm() DominantSequence {
	seq := t.appendLevels(nil, 0)
	return CanonicalizeByRanking(LevelSequence(seq))
}

func (t RootedTree) appendLevels(seq []int, level int) []int {
	seq = append(seq, level)
	t.children.Each(func(child RootedTree, count int) bool {
		for i := 0; i < count; i++ {
			seq = child.appendLevels(seq, level+1)
		}
		return true
	})
	return seq
}

// Degeneracy returns the order of the tree's automorphism group.
func (t RootedTree) Degeneracy() *big.Int {
	deg := t.children.Degeneracy()
	t.children.Each(func(child RootedTree, count int) bool {
		sub := child.Degeneracy()
		deg.Mul(deg, sub.Exp(sub, big.NewInt(int64(count)), nil))
		return true
	})
	return deg
}

// String renders the canonical text form "RootedTree({{}, {}^2})", child
// subtrees in descending comparator order.
func (t RootedTree) String() string {
	return "RootedTree(" + t.braces() + ")"
}

func (t RootedTree) braces() string {
	return t.children.Format(RootedTree.braces)
}
