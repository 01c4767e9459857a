package funcstruct

import (
	"math/big"

	"github.com/funcstruct-systems/gofunc/gofunc"
	"github.com/funcstruct-systems/gofunc/libfunc/combinat"
	"github.com/funcstruct-systems/gofunc/libfunc/multiset"
	"github.com/funcstruct-systems/gofunc/libfunc/necklaces"
	"github.com/funcstruct-systems/gofunc/libfunc/rootedtrees"
)

// TreeNecklace is a cycle with its attached trees: a necklace whose beads
// are the canonical forms of the trees hanging off each cyclic node.
type TreeNecklace = necklaces.Necklace[rootedtrees.DominantSequence]

// CompareTreeNecklaces is the gofunc.Comparator for TreeNecklaces.
func CompareTreeNecklaces(a, b TreeNecklace) int {
	return a.Compare(b)
}

// NewTreeNecklace canonicalizes a strand of trees into a TreeNecklace.
func NewTreeNecklace(trees []rootedtrees.DominantSequence) (TreeNecklace, error) {
	return necklaces.New(rootedtrees.CompareTrees, trees)
}

// Funcstruct is the structure of an endofunction: the multiset of its
// cycles, each cycle a TreeNecklace.  Two endofunctions are conjugate
// exactly when their Funcstructs are equal.
type Funcstruct struct {
	cycles multiset.Multiset[TreeNecklace]
	n      int
}

// New builds a Funcstruct from its cycle multiset.
func New(cycles multiset.Multiset[TreeNecklace]) Funcstruct {
	n := 0
	cycles.Each(func(nk TreeNecklace, count int) bool {
		size := 0
		nk.Each(func(tree rootedtrees.DominantSequence) bool {
			size += tree.Len()
			return true
		})
		n += size * count
		return true
	})
	return Funcstruct{cycles: cycles, n: n}
}

// FromFunc extracts the structure of f: walk each cycle, lift the tree of
// acyclic ancestors at each cyclic node, and collect the resulting
// necklaces.
func FromFunc(f Endofunction) Funcstruct {
	limit := f.LimitSet()
	var cycles []TreeNecklace
	for _, cycle := range f.Cycles() {
		strand := make([]rootedtrees.DominantSequence, len(cycle))
		for i, el := range cycle {
			levels := f.AttachedTree(el, limit)
			strand[i] = rootedtrees.CanonicalizeByRanking(levels)
		}
		nk, _ := NewTreeNecklace(strand)
		cycles = append(cycles, nk)
	}
	return New(multiset.New(CompareTreeNecklaces, cycles...))
}

// Len returns the number of nodes.
func (fs Funcstruct) Len() int {
	return fs.n
}

// Cycles returns the cycle multiset.
func (fs Funcstruct) Cycles() multiset.Multiset[TreeNecklace] {
	return fs.cycles
}

// Compare orders funcstructs by their cycle multisets.
func (fs Funcstruct) Compare(other Funcstruct) int {
	return fs.cycles.Compare(other.cycles)
}

// Equal reports whether both values denote the same structure.
func (fs Funcstruct) Equal(other Funcstruct) bool {
	return fs.n == other.n && fs.Compare(other) == 0
}

// CompareFuncstructs is the gofunc.Comparator for Funcstructs.
func CompareFuncstructs(a, b Funcstruct) int {
	return a.Compare(b)
}

// Degeneracy returns the number of labellings of [0,n) producing the same
// endofunction: repeated cycles may be interchanged, each cycle may be
// rotated onto itself, and each tree contributes its own automorphisms.
func (fs Funcstruct) Degeneracy() *big.Int {
	deg := fs.cycles.Degeneracy()
	fs.cycles.Each(func(nk TreeNecklace, count int) bool {
		cycleDeg := big.NewInt(int64(nk.Degeneracy()))
		nk.Each(func(tree rootedtrees.DominantSequence) bool {
			cycleDeg.Mul(cycleDeg, tree.Degeneracy())
			return true
		})
		deg.Mul(deg, cycleDeg.Exp(cycleDeg, big.NewInt(int64(count)), nil))
		return true
	})
	return deg
}

// FuncForm returns a representative endofunction on [0,n) with this
// structure.  Tree nodes are labelled in blocks; each tree root is then
// redirected to the next root in its cycle, the last back to the first.
func (fs Funcstruct) FuncForm() Endofunction {
	f := make(Endofunction, 0, fs.n)
	rootNode, endNode := 0, 0
	fs.cycles.Elements(func(nk TreeNecklace) bool {
		cycleStart := len(f)
		lastLen := 0
		nk.Each(func(tree rootedtrees.DominantSequence) bool {
			lastLen = tree.Len()
			endNode += lastLen
			labels := make([]int, lastLen)
			for i := range labels {
				labels[i] = rootNode + i
			}
			f = append(f, tree.Levels().MapLabelling(labels)...)
			f[rootNode] = endNode
			rootNode = endNode
			return true
		})
		f[rootNode-lastLen] = cycleStart
		return true
	})
	return f
}

// ImagePath returns the image sizes of the iterates of any endofunction
// with this structure, computed from the tree shapes alone.  Each strictly
// increasing run of heights in a tree marks a chain of nodes that falls out
// of the image after as many iterations as its depth.
func (fs Funcstruct) ImagePath() []int {
	size := fs.n
	if size < 2 {
		size = 2
	}
	card := make([]int, size)
	card[0] = fs.n
	fs.cycles.Each(func(nk TreeNecklace, mult int) bool {
		nk.Each(func(tree rootedtrees.DominantSequence) bool {
			for _, run := range combinat.IncreasingRuns([]int(tree[1:])) {
				last := run[len(run)-1]
				for _, it := range run[:len(run)-1] {
					card[last-it+1] -= mult
				}
				card[1] -= mult
			}
			return true
		})
		return true
	})
	for i := 1; i < len(card); i++ {
		card[i] += card[i-1]
	}
	return card[1:]
}

// String renders the canonical text form
// "Funcstruct({Necklace([DominantSequence([0])])^2})".
func (fs Funcstruct) String() string {
	return "Funcstruct(" + fs.cycles.Format(func(nk TreeNecklace) string {
		return nk.Format(rootedtrees.DominantSequence.String)
	}) + ")"
}

// AppendEncodingTo appends a canonical binary encoding: the distinct cycle
// count, then per cycle its multiplicity, bead count, and bead encodings.
func (fs Funcstruct) AppendEncodingTo(buf []byte) []byte {
	buf = gofunc.AppendUvarint(buf, uint64(fs.cycles.Distinct()))
	fs.cycles.Each(func(nk TreeNecklace, count int) bool {
		buf = gofunc.AppendUvarint(buf, uint64(count))
		buf = gofunc.AppendUvarint(buf, uint64(nk.Len()))
		nk.Each(func(tree rootedtrees.DominantSequence) bool {
			buf = tree.AppendEncodingTo(buf)
			return true
		})
		return true
	})
	return buf
}

// DecodeStruct reads an encoding made by AppendEncodingTo, returning the
// structure and the remaining bytes.
func DecodeStruct(buf []byte) (Funcstruct, []byte, error) {
	distinct, buf, err := gofunc.ReadUvarint(buf)
	if err != nil {
		return Funcstruct{}, buf, err
	}
	cycles := make([]TreeNecklace, distinct)
	counts := make([]int, distinct)
	for i := range cycles {
		var count, beads uint64
		count, buf, err = gofunc.ReadUvarint(buf)
		if err != nil {
			return Funcstruct{}, buf, err
		}
		beads, buf, err = gofunc.ReadUvarint(buf)
		if err != nil {
			return Funcstruct{}, buf, err
		}
		strand := make([]rootedtrees.DominantSequence, beads)
		for j := range strand {
			strand[j], buf, err = rootedtrees.DecodeSequence(buf)
			if err != nil {
				return Funcstruct{}, buf, err
			}
		}
		cycles[i], err = NewTreeNecklace(strand)
		if err != nil {
			return Funcstruct{}, buf, gofunc.ErrUnmarshal
		}
		counts[i] = int(count)
	}
	ms, err := multiset.FromPairs(CompareTreeNecklaces, cycles, counts)
	if err != nil {
		return Funcstruct{}, buf, gofunc.ErrUnmarshal
	}
	return New(ms), buf, nil
}
