// Package funcstruct represents endofunctions on a finite set and their
// structures: the conjugacy classes of the full transformation monoid.
package funcstruct

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/funcstruct-systems/gofunc/gofunc"
	"github.com/funcstruct-systems/gofunc/libfunc/rootedtrees"
)

// Endofunction is a map of [0,n) into itself, stored as the value slice.
type Endofunction []int

// NewEndofunction validates and adopts f.
// Fails with gofunc.ErrInvalidFunc if any value falls outside [0,len(f)).
func NewEndofunction(f []int) (Endofunction, error) {
	for _, y := range f {
		if y < 0 || y >= len(f) {
			return nil, gofunc.ErrInvalidFunc
		}
	}
	return Endofunction(f), nil
}

// Identity returns the identity map on [0,n).
func Identity(n int) Endofunction {
	f := make(Endofunction, n)
	for i := range f {
		f[i] = i
	}
	return f
}

// RandFunc returns a uniformly random endofunction on n elements.
func RandFunc(n int) Endofunction {
	f := make(Endofunction, n)
	for i := range f {
		f[i] = rand.Intn(n)
	}
	return f
}

// Len returns the domain size.
func (f Endofunction) Len() int {
	return len(f)
}

// Compose returns f after g, x -> f(g(x)).
func (f Endofunction) Compose(g Endofunction) Endofunction {
	h := make(Endofunction, len(g))
	for x, y := range g {
		h[x] = f[y]
	}
	return h
}

// Pow returns the nth iterate of f by repeated squaring.
func (f Endofunction) Pow(n int) Endofunction {
	iter := Identity(len(f))
	sq := append(Endofunction{}, f...)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			iter = sq.Compose(iter)
		}
		sq = sq.Compose(sq)
	}
	return iter
}

// ImageSize returns the number of distinct values f takes.
func (f Endofunction) ImageSize() int {
	seen := make([]bool, len(f))
	size := 0
	for _, y := range f {
		if !seen[y] {
			seen[y] = true
			size++
		}
	}
	return size
}

// Preimage returns, for each y, the x with f(x) = y in ascending order.
func (f Endofunction) Preimage() [][]int {
	preim := make([][]int, len(f))
	for x, y := range f {
		preim[y] = append(preim[y], x)
	}
	return preim
}

// ImagePath returns the image sizes of the iterates f, f^2, f^3, ...,
// stopping at f^(n-1) since image sizes are stable from there on.
func (f Endofunction) ImagePath() []int {
	n := len(f)
	path := []int{f.ImageSize()}
	g := f
	cardPrev := n
	for it := 1; it <= n-2; it++ {
		g = g.Compose(f)
		card := g.ImageSize()
		path = append(path, card)
		// The sizes are non-increasing; once they stop shrinking the
		// limit set has been reached.
		if card == cardPrev {
			for len(path) < n-1 {
				path = append(path, card)
			}
			break
		}
		cardPrev = card
	}
	return path
}

// Cycles returns the cycle decomposition of f in O(n) time.  Each cycle is
// listed in iteration order, f mapping each entry to the next and the last
// back to the first.
func (f Endofunction) Cycles() [][]int {
	n := len(f)
	tried := make([]bool, n)
	inCycle := make([]bool, n)
	var cycles [][]int
	for x0 := 0; x0 < n; x0++ {
		if tried[x0] {
			continue
		}
		x := x0
		path := []int{x}
		for !tried[x] {
			tried[x] = true
			x = f[x]
			path = append(path, x)
		}
		if inCycle[x] {
			continue
		}
		first := 0
		for path[first] != x {
			first++
		}
		cycle := path[first+1:]
		if len(cycle) > 0 {
			for _, c := range cycle {
				inCycle[c] = true
			}
			cycles = append(cycles, cycle)
		}
	}
	return cycles
}

// LimitSet returns membership flags for the cyclic nodes, the subset of the
// domain on which f is invertible.
func (f Endofunction) LimitSet() []bool {
	limit := make([]bool, len(f))
	for _, cycle := range f.Cycles() {
		for _, x := range cycle {
			limit[x] = true
		}
	}
	return limit
}

// AttachedTree returns the level sequence of the tree of acyclic nodes
// whose iteration paths enter the limit set at root.
func (f Endofunction) AttachedTree(root int, limit []bool) rootedtrees.LevelSequence {
	ancestors := make([][]int, len(f))
	for x, y := range f {
		if !limit[x] {
			ancestors[y] = append(ancestors[y], x)
		}
	}
	return levelsFromPreimage(ancestors, root)
}

// levelsFromPreimage walks the acyclic ancestor graph depth-first from
// root, emitting node heights.
func levelsFromPreimage(ancestors [][]int, root int) rootedtrees.LevelSequence {
	var seq rootedtrees.LevelSequence
	type frame struct{ node, level int }
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		seq = append(seq, fr.level)
		for _, y := range ancestors[fr.node] {
			stack = append(stack, frame{y, fr.level + 1})
		}
	}
	return seq
}

// Equal reports pointwise equality.
func (f Endofunction) Equal(other Endofunction) bool {
	if len(f) != len(other) {
		return false
	}
	for x, y := range f {
		if other[x] != y {
			return false
		}
	}
	return true
}

// String renders the map as "Endofunction([0 -> 1, 1 -> 0])".
func (f Endofunction) String() string {
	var b strings.Builder
	b.WriteString("Endofunction([")
	for x, y := range f {
		if x > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(x))
		b.WriteString(" -> ")
		b.WriteString(strconv.Itoa(y))
	}
	b.WriteString("])")
	return b.String()
}

// Permutation is an invertible Endofunction.
type Permutation Endofunction

// NewPermutation validates f as a bijection.
// Fails with gofunc.ErrInvalidFunc on an out-of-range value and
// gofunc.ErrNotInvertible on a repeated one.
func NewPermutation(f []int) (Permutation, error) {
	ef, err := NewEndofunction(f)
	if err != nil {
		return nil, err
	}
	if ef.ImageSize() != len(ef) {
		return nil, gofunc.ErrNotInvertible
	}
	return Permutation(ef), nil
}

// RandPerm returns a uniformly random permutation of [0,n).
func RandPerm(n int) Permutation {
	return Permutation(rand.Perm(n))
}

// RandConj returns a random conjugate of f, a uniformly random member of
// its conjugacy class up to degeneracy.
func RandConj(f Endofunction) Endofunction {
	return RandPerm(len(f)).Conj(f)
}

// Func returns the permutation viewed as an Endofunction.
func (s Permutation) Func() Endofunction {
	return Endofunction(s)
}

// Inverse returns the permutation t with t(s(x)) = x.
func (s Permutation) Inverse() Permutation {
	inv := make(Permutation, len(s))
	for x, y := range s {
		inv[y] = x
	}
	return inv
}

// Conj returns s * f * s^-1, the relabelling of f along s.  Conjugate
// functions share the same structure.
func (s Permutation) Conj(f Endofunction) Endofunction {
	g := make(Endofunction, len(f))
	for x, y := range s {
		g[y] = s[f[x]]
	}
	return g
}
