package rootedtrees_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/funcstruct-systems/gofunc/gofunc"
	"github.com/funcstruct-systems/gofunc/libfunc/multiset"
	"github.com/funcstruct-systems/gofunc/libfunc/rootedtrees"
)

// A000081: unlabelled rooted trees on n nodes.
var treeCounts = []int64{0, 1, 1, 2, 4, 9, 20, 48, 115, 286}

func TestLevelSequenceValidation(t *testing.T) {
	bad := [][]int{
		{},
		{1},
		{0, 2},
		{0, 1, 3},
		{0, 1, 0},
		{0, -1},
	}
	for _, seq := range bad {
		if _, err := rootedtrees.NewLevelSequence(seq); err != gofunc.ErrInvalidTreeShape {
			t.Fatalf("NewLevelSequence(%v) err = %v", seq, err)
		}
	}

	good := [][]int{
		{0},
		{0, 1, 1, 2, 3, 2},
		{0, 1, 2, 3, 4},
	}
	for _, seq := range good {
		if _, err := rootedtrees.NewLevelSequence(seq); err != nil {
			t.Fatalf("NewLevelSequence(%v) err = %v", seq, err)
		}
	}
}

func TestParentsAndBranches(t *testing.T) {
	ls, err := rootedtrees.NewLevelSequence([]int{0, 1, 2, 2, 1})
	if err != nil {
		t.Fatal(err)
	}

	parents := ls.Parents()
	want := []int{0, 0, 1, 1, 0}
	for i := range want {
		if parents[i] != want[i] {
			t.Fatalf("Parents = %v", parents)
		}
	}

	branches := ls.Branches()
	if len(branches) != 2 {
		t.Fatalf("Branches = %v", branches)
	}
	if branches[0].Len() != 3 || branches[1].Len() != 1 {
		t.Fatalf("Branches = %v", branches)
	}
	if branches[0][0] != 0 || branches[0][1] != 1 || branches[0][2] != 1 {
		t.Fatalf("branch heights not decremented: %v", branches[0])
	}
}

func TestMapLabelling(t *testing.T) {
	ls, _ := rootedtrees.NewLevelSequence([]int{0, 1, 1, 2})
	f := ls.MapLabelling([]int{4, 5, 6, 7})
	want := []int{4, 4, 4, 6}
	for i := range want {
		if f[i] != want[i] {
			t.Fatalf("MapLabelling = %v", f)
		}
	}
}

func TestEnumerationCounts(t *testing.T) {
	for n := 1; n <= 9; n++ {
		te, err := rootedtrees.NewTreeEnumerator(n)
		if err != nil {
			t.Fatal(err)
		}
		seen := int64(0)
		var prev rootedtrees.DominantSequence
		te.Each(func(ds rootedtrees.DominantSequence) bool {
			if ds.Len() != n {
				t.Fatalf("tree on %d nodes has %d", n, ds.Len())
			}
			if prev != nil && prev.Compare(ds) <= 0 {
				t.Fatalf("enumeration not strictly decreasing at %v", ds)
			}
			prev = rootedtrees.DominantSequence(ds.Levels().Clone())
			seen++
			return true
		})
		if seen != treeCounts[n] {
			t.Fatalf("enumerated %d trees on %d nodes, want %d", seen, n, treeCounts[n])
		}
		if te.Cardinality().Int64() != treeCounts[n] {
			t.Fatalf("Cardinality(%d) = %v", n, te.Cardinality())
		}
	}

	if _, err := rootedtrees.NewTreeEnumerator(0); err != gofunc.ErrInvalidSize {
		t.Fatal("size 0 should be rejected")
	}
}

func TestCanonicalizersAgree(t *testing.T) {
	for n := 1; n <= 8; n++ {
		te, _ := rootedtrees.NewTreeEnumerator(n)
		te.Each(func(ds rootedtrees.DominantSequence) bool {
			ls := ds.Levels()
			byRank := rootedtrees.CanonicalizeByRanking(ls)
			bySort := rootedtrees.CanonicalizeBySorting(ls)
			if !byRank.Equal(bySort) {
				t.Fatalf("canonicalizers disagree on %v: %v vs %v", ls, byRank, bySort)
			}
			// A dominant sequence is its own canonical form.
			if !byRank.Equal(ds) {
				t.Fatalf("%v is not a fixed point of canonicalization", ds)
			}
			return true
		})
	}
}

func TestRootedTreeRoundTrip(t *testing.T) {
	for n := 1; n <= 8; n++ {
		te, _ := rootedtrees.NewTreeEnumerator(n)
		te.Each(func(ds rootedtrees.DominantSequence) bool {
			tree := rootedtrees.TreeFromSequence(ds.Levels())
			if tree.Len() != n {
				t.Fatalf("round trip changed node count for %v", ds)
			}
			if !tree.OrderedForm().Equal(ds) {
				t.Fatalf("round trip of %v gave %v", ds, tree.OrderedForm())
			}
			if tree.Degeneracy().Cmp(ds.Degeneracy()) != 0 {
				t.Fatalf("degeneracy mismatch for %v", ds)
			}
			return true
		})
	}
}

// The number of labelled rooted trees on n nodes is n^(n-1); each
// unlabelled tree accounts for n!/degeneracy labellings.
func TestLabelledTreeCounts(t *testing.T) {
	for n := 1; n <= 7; n++ {
		total := new(big.Int)
		factorial := new(big.Int).MulRange(1, int64(n))
		te, _ := rootedtrees.NewTreeEnumerator(n)
		te.Each(func(ds rootedtrees.DominantSequence) bool {
			labellings := new(big.Int).Div(factorial, ds.Degeneracy())
			total.Add(total, labellings)
			return true
		})
		want := new(big.Int).Exp(big.NewInt(int64(n)), big.NewInt(int64(n-1)), nil)
		if total.Cmp(want) != 0 {
			t.Fatalf("labelled count for n=%d: %v, want %v", n, total, want)
		}
	}
}

func TestChop(t *testing.T) {
	ds, err := rootedtrees.NewDominantSequence([]int{0, 1, 2, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	chopped := ds.Chop()
	if chopped.Size() != 3 || chopped.Distinct() != 2 {
		t.Fatalf("Chop = %v distinct %v", chopped.Size(), chopped.Distinct())
	}

	single, _ := rootedtrees.NewDominantSequence([]int{0})
	if single.Chop().Size() != 0 {
		t.Fatal("chopping a single node should leave nothing")
	}
}

func TestForestEnumerator(t *testing.T) {
	// Forests on n nodes = trees on n+1 nodes.
	for n := 0; n <= 7; n++ {
		fe, err := rootedtrees.NewForestEnumerator(n)
		if err != nil {
			t.Fatal(err)
		}
		seen := int64(0)
		fe.Each(func(f rootedtrees.Forest) bool {
			if f.Size() > 0 {
				nodes := 0
				f.Each(func(tree rootedtrees.DominantSequence, count int) bool {
					nodes += tree.Len() * count
					return true
				})
				if nodes != n {
					t.Fatalf("forest has %d nodes, want %d", nodes, n)
				}
			}
			seen++
			return true
		})
		if seen != treeCounts[n+1] {
			t.Fatalf("enumerated %d forests on %d nodes, want %d", seen, n, treeCounts[n+1])
		}
		if fe.Cardinality().Int64() != treeCounts[n+1] {
			t.Fatal("forest Cardinality")
		}
	}
}

func TestPartitionForests(t *testing.T) {
	sizes := multiset.New(gofunc.CompareInts, 1, 1, 3)
	pf, err := rootedtrees.NewPartitionForests(sizes)
	if err != nil {
		t.Fatal(err)
	}

	seen := int64(0)
	pf.Each(func(f rootedtrees.Forest) bool {
		if f.Size() != 3 {
			t.Fatalf("forest has %d trees", f.Size())
		}
		seen++
		return true
	})
	// One choice for the two single-node trees, two trees on 3 nodes.
	if seen != 2 {
		t.Fatalf("enumerated %d forests, want 2", seen)
	}
	if pf.Cardinality().Int64() != 2 {
		t.Fatalf("Cardinality = %v", pf.Cardinality())
	}

	// Repetition: two trees of size 3 chosen unordered from 2 shapes.
	pf2, _ := rootedtrees.NewPartitionForests(multiset.New(gofunc.CompareInts, 3, 3))
	if pf2.Cardinality().Int64() != 3 {
		t.Fatalf("Cardinality = %v", pf2.Cardinality())
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	te, _ := rootedtrees.NewTreeEnumerator(7)
	te.Each(func(ds rootedtrees.DominantSequence) bool {
		buf := ds.AppendEncodingTo(nil)
		got, rest, err := rootedtrees.DecodeSequence(buf)
		if err != nil {
			t.Fatal(err)
		}
		if len(rest) != 0 {
			t.Fatal("trailing bytes")
		}
		if !got.Equal(ds) {
			t.Fatalf("decoded %v from %v", got, ds)
		}
		return true
	})

	if _, _, err := rootedtrees.DecodeSequence([]byte{2, 1, 1}); err != gofunc.ErrUnmarshal {
		t.Fatalf("invalid shape should fail to decode, got %v", err)
	}
}

func TestShuffledLabellingsCanonicalize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	te, _ := rootedtrees.NewTreeEnumerator(8)
	te.Each(func(ds rootedtrees.DominantSequence) bool {
		// Rebuild the tree with branches reinserted in random order; the
		// canonical form must be unchanged.
		tree := rootedtrees.TreeFromSequence(shuffleTree(rng, ds.Levels()))
		if !tree.OrderedForm().Equal(ds) {
			t.Fatalf("reordering changed canonical form of %v", ds)
		}
		return true
	})
}

// shuffleTree rebuilds ls with each node's branches in random order.
func shuffleTree(rng *rand.Rand, ls rootedtrees.LevelSequence) rootedtrees.LevelSequence {
	branches := ls.Branches()
	rng.Shuffle(len(branches), func(i, j int) {
		branches[i], branches[j] = branches[j], branches[i]
	})
	out := rootedtrees.LevelSequence{0}
	for _, br := range branches {
		for _, h := range shuffleTree(rng, br) {
			out = append(out, h+1)
		}
	}
	return out
}
