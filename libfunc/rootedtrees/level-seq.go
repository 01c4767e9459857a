// Package rootedtrees represents and enumerates unlabelled rooted trees.
//
// A tree appears in two interchangeable forms: the LevelSequence (ordered,
// depth-first node heights) and the RootedTree (unordered, recursive
// multiset of subtrees).  The DominantSequence is the canonical ordered
// form; two level sequences denote the same unlabelled tree exactly when
// their dominant sequences are identical.
package rootedtrees

import (
	"strconv"
	"strings"

	"github.com/funcstruct-systems/gofunc/gofunc"
)

// LevelSequence lists each node's height above the root in depth-first
// order.  The root has height 0 and no node exceeds its predecessor's
// height by more than one.
type LevelSequence []int

// NewLevelSequence validates and adopts seq.
// Fails with gofunc.ErrInvalidTreeShape on an empty sequence, a non-zero
// root, or a height jump greater than one.
func NewLevelSequence(seq []int) (LevelSequence, error) {
	if len(seq) == 0 || seq[0] != 0 {
		return nil, gofunc.ErrInvalidTreeShape
	}
	prev := 0
	for _, h := range seq[1:] {
		if h < 1 || h > prev+1 {
			return nil, gofunc.ErrInvalidTreeShape
		}
		prev = h
	}
	return LevelSequence(seq), nil
}

// Len returns the node count.
func (ls LevelSequence) Len() int {
	return len(ls)
}

// Clone returns an independent copy.
func (ls LevelSequence) Clone() LevelSequence {
	return append(LevelSequence{}, ls...)
}

// Branches partitions the sequence (root excluded) into the maximal runs
// beginning wherever the height returns to 1, decrementing each run by one.
// Each run is the level sequence of one child subtree of the root.  This is
// the decomposition primitive behind canonicalization, degeneracy and the
// forest enumerators.
func (ls LevelSequence) Branches() []LevelSequence {
	var branches []LevelSequence
	start := 1
	for i := 2; i <= len(ls); i++ {
		if i == len(ls) || ls[i] == 1 {
			branch := make(LevelSequence, i-start)
			for j, h := range ls[start:i] {
				branch[j] = h - 1
			}
			branches = append(branches, branch)
			start = i
		}
	}
	return branches
}

// Parents returns, for each node, the index of its parent in the sequence.
// The root is its own parent.
func (ls LevelSequence) Parents() []int {
	parents := make([]int, len(ls))
	graft := make([]int, len(ls)+1)
	for node, level := range ls {
		if node > 0 {
			parents[node] = graft[level-1]
		}
		graft[level] = node
	}
	return parents
}

// MapLabelling maps each node to its parent's label under the given
// labelling, with the root mapped to its own label.  This is the tree's
// structure expressed as a function on labels.
func (ls LevelSequence) MapLabelling(labels []int) []int {
	out := make([]int, len(ls))
	for node, parent := range ls.Parents() {
		out[node] = labels[parent]
	}
	return out
}

// Compare orders level sequences lexicographically.
func (ls LevelSequence) Compare(other LevelSequence) int {
	return gofunc.CompareSeqs(gofunc.CompareInts, ls, other)
}

func (ls LevelSequence) format(name string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString("([")
	for i, h := range ls {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(h))
	}
	b.WriteString("])")
	return b.String()
}

// String renders the canonical text form "LevelSequence([0, 1, 1])".
func (ls LevelSequence) String() string {
	return ls.format("LevelSequence")
}

// heightGroups returns node indices in breadth-first order grouped by
// height.
func (ls LevelSequence) heightGroups() [][]int {
	var groups [][]int
	for node, h := range ls {
		if h+1 > len(groups) {
			groups = append(groups, nil)
		}
		groups[h] = append(groups[h], node)
	}
	return groups
}

// children returns, for each node, its child node indices in sequence
// order.
func (ls LevelSequence) children() [][]int {
	kids := make([][]int, len(ls))
	parents := ls.Parents()
	for node := 1; node < len(ls); node++ {
		kids[parents[node]] = append(kids[parents[node]], node)
	}
	return kids
}
