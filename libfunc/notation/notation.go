// Package notation parses the canonical text forms emitted by the String
// and Format methods of the structure types, such as
// "DominantSequence([0, 1, 1])", "RootedTree({{}, {}^2})" and
// "Funcstruct({Necklace([DominantSequence([0])])^2})".
package notation

import (
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/funcstruct-systems/gofunc/gofunc"
	"github.com/funcstruct-systems/gofunc/libfunc/funcstruct"
	"github.com/funcstruct-systems/gofunc/libfunc/multiset"
	"github.com/funcstruct-systems/gofunc/libfunc/rootedtrees"
)

type expr struct {
	Call     *call     `  @@`
	Braces   *braces   `| @@`
	Brackets *brackets `| @@`
	Num      *int      `| @Int`
}

type call struct {
	Name string `@Ident`
	Arg  *expr  `"(" @@ ")"`
}

type braces struct {
	Terms []*term `"{" (@@ ("," @@)*)? "}"`
}

type term struct {
	Value *expr `@@`
	Count *int  `("^" @Int)?`
}

type brackets struct {
	Items []*item `"[" (@@ ("," @@)*)? "]"`
}

type item struct {
	Value *expr `@@`
	Arrow *int  `("-" ">" @Int)?`
}

var parser = participle.MustBuild[expr]()

func parse(s string) (*expr, error) {
	ex, err := parser.ParseString("", s)
	if err != nil {
		return nil, errors.Wrap(err, "parsing structure notation")
	}
	return ex, nil
}

// unwrapCall checks for "Name(arg)" with the given constructor name.
func unwrapCall(ex *expr, name string) (*expr, error) {
	if ex.Call == nil || ex.Call.Name != name {
		return nil, errors.Wrapf(gofunc.ErrTypeMismatch, "expected %s(...)", name)
	}
	return ex.Call.Arg, nil
}

func intList(ex *expr) ([]int, error) {
	if ex == nil || ex.Brackets == nil {
		return nil, errors.Wrap(gofunc.ErrTypeMismatch, "expected a [...] list")
	}
	out := make([]int, len(ex.Brackets.Items))
	for i, it := range ex.Brackets.Items {
		if it.Value.Num == nil || it.Arrow != nil {
			return nil, errors.Wrap(gofunc.ErrTypeMismatch, "expected an integer list entry")
		}
		out[i] = *it.Value.Num
	}
	return out, nil
}

// ParseLevelSequence reads "LevelSequence([0, 1, 1])".
func ParseLevelSequence(s string) (rootedtrees.LevelSequence, error) {
	ex, err := parse(s)
	if err != nil {
		return nil, err
	}
	arg, err := unwrapCall(ex, "LevelSequence")
	if err != nil {
		return nil, err
	}
	seq, err := intList(arg)
	if err != nil {
		return nil, err
	}
	return rootedtrees.NewLevelSequence(seq)
}

// ParseDominantSequence reads "DominantSequence([0, 1, 1])", canonicalizing
// the heights if they are not already in dominant order.
func ParseDominantSequence(s string) (rootedtrees.DominantSequence, error) {
	ex, err := parse(s)
	if err != nil {
		return nil, err
	}
	return dominantFromExpr(ex)
}

func dominantFromExpr(ex *expr) (rootedtrees.DominantSequence, error) {
	arg, err := unwrapCall(ex, "DominantSequence")
	if err != nil {
		return nil, err
	}
	seq, err := intList(arg)
	if err != nil {
		return nil, err
	}
	return rootedtrees.NewDominantSequence(seq)
}

// ParseRootedTree reads the recursive brace form "RootedTree({{}, {}^2})".
func ParseRootedTree(s string) (rootedtrees.RootedTree, error) {
	ex, err := parse(s)
	if err != nil {
		return rootedtrees.RootedTree{}, err
	}
	arg, err := unwrapCall(ex, "RootedTree")
	if err != nil {
		return rootedtrees.RootedTree{}, err
	}
	return treeFromExpr(arg)
}

func treeFromExpr(ex *expr) (rootedtrees.RootedTree, error) {
	if ex == nil || ex.Braces == nil {
		return rootedtrees.RootedTree{}, errors.Wrap(gofunc.ErrTypeMismatch, "expected a {...} subtree")
	}
	var children []rootedtrees.RootedTree
	for _, t := range ex.Braces.Terms {
		child, err := treeFromExpr(t.Value)
		if err != nil {
			return rootedtrees.RootedTree{}, err
		}
		count := 1
		if t.Count != nil {
			count = *t.Count
		}
		if count < 1 {
			return rootedtrees.RootedTree{}, gofunc.ErrInvalidCount
		}
		for i := 0; i < count; i++ {
			children = append(children, child)
		}
	}
	return rootedtrees.NewRootedTree(children...), nil
}

// ParseNecklace reads "Necklace([DominantSequence([0]), ...])".
func ParseNecklace(s string) (funcstruct.TreeNecklace, error) {
	ex, err := parse(s)
	if err != nil {
		return funcstruct.TreeNecklace{}, err
	}
	return necklaceFromExpr(ex)
}

func necklaceFromExpr(ex *expr) (funcstruct.TreeNecklace, error) {
	arg, err := unwrapCall(ex, "Necklace")
	if err != nil {
		return funcstruct.TreeNecklace{}, err
	}
	if arg == nil || arg.Brackets == nil {
		return funcstruct.TreeNecklace{}, errors.Wrap(gofunc.ErrTypeMismatch, "expected a [...] bead list")
	}
	strand := make([]rootedtrees.DominantSequence, len(arg.Brackets.Items))
	for i, it := range arg.Brackets.Items {
		strand[i], err = dominantFromExpr(it.Value)
		if err != nil {
			return funcstruct.TreeNecklace{}, err
		}
	}
	return funcstruct.NewTreeNecklace(strand)
}

// ParseForest reads the multiset form "{DominantSequence([0])^2}".
func ParseForest(s string) (rootedtrees.Forest, error) {
	ex, err := parse(s)
	if err != nil {
		return rootedtrees.Forest{}, err
	}
	if ex.Braces == nil {
		return rootedtrees.Forest{}, errors.Wrap(gofunc.ErrTypeMismatch, "expected a {...} forest")
	}
	var trees []rootedtrees.DominantSequence
	var counts []int
	for _, t := range ex.Braces.Terms {
		tree, err := dominantFromExpr(t.Value)
		if err != nil {
			return rootedtrees.Forest{}, err
		}
		count := 1
		if t.Count != nil {
			count = *t.Count
		}
		trees = append(trees, tree)
		counts = append(counts, count)
	}
	return multiset.FromPairs(rootedtrees.CompareTrees, trees, counts)
}

// ParseEndofunction reads "Endofunction([0 -> 1, 1 -> 0])".
func ParseEndofunction(s string) (funcstruct.Endofunction, error) {
	ex, err := parse(s)
	if err != nil {
		return nil, err
	}
	arg, err := unwrapCall(ex, "Endofunction")
	if err != nil {
		return nil, err
	}
	if arg == nil || arg.Brackets == nil {
		return nil, errors.Wrap(gofunc.ErrTypeMismatch, "expected a [...] map list")
	}
	f := make([]int, len(arg.Brackets.Items))
	seen := make([]bool, len(f))
	for _, it := range arg.Brackets.Items {
		if it.Value.Num == nil || it.Arrow == nil {
			return nil, errors.Wrap(gofunc.ErrTypeMismatch, "expected an x -> y map entry")
		}
		x := *it.Value.Num
		if x < 0 || x >= len(f) || seen[x] {
			return nil, gofunc.ErrInvalidFunc
		}
		seen[x] = true
		f[x] = *it.Arrow
	}
	return funcstruct.NewEndofunction(f)
}

// ParseFuncstruct reads "Funcstruct({Necklace([...])^2, ...})".
func ParseFuncstruct(s string) (funcstruct.Funcstruct, error) {
	ex, err := parse(s)
	if err != nil {
		return funcstruct.Funcstruct{}, err
	}
	arg, err := unwrapCall(ex, "Funcstruct")
	if err != nil {
		return funcstruct.Funcstruct{}, err
	}
	if arg == nil || arg.Braces == nil {
		return funcstruct.Funcstruct{}, errors.Wrap(gofunc.ErrTypeMismatch, "expected a {...} cycle multiset")
	}
	var cycles []funcstruct.TreeNecklace
	var counts []int
	for _, t := range arg.Braces.Terms {
		nk, err := necklaceFromExpr(t.Value)
		if err != nil {
			return funcstruct.Funcstruct{}, err
		}
		count := 1
		if t.Count != nil {
			count = *t.Count
		}
		cycles = append(cycles, nk)
		counts = append(counts, count)
	}
	ms, err := multiset.FromPairs(funcstruct.CompareTreeNecklaces, cycles, counts)
	if err != nil {
		return funcstruct.Funcstruct{}, err
	}
	return funcstruct.New(ms), nil
}
