package combinat_test

import (
	"math/big"
	"testing"

	"github.com/funcstruct-systems/gofunc/libfunc/combinat"
)

func TestDivisors(t *testing.T) {
	got := combinat.Divisors(12)
	want := []int{1, 2, 3, 4, 6, 12}
	if len(got) != len(want) {
		t.Fatalf("Divisors(12) = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Divisors(12) = %v", got)
		}
	}
	if combinat.Divisors(1)[0] != 1 || len(combinat.Divisors(1)) != 1 {
		t.Fatal("Divisors(1)")
	}
	if combinat.Divisors(0) != nil {
		t.Fatal("Divisors(0) should be nil")
	}
}

func TestDivisorCache(t *testing.T) {
	dc := combinat.NewDivisorCache()
	for n := 1; n <= 100; n++ {
		a := dc.Divisors(n)
		b := combinat.Divisors(n)
		if len(a) != len(b) {
			t.Fatalf("cached divisors disagree at %d", n)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("cached divisors disagree at %d", n)
			}
		}
	}
	// Second pass hits the cache.
	if len(dc.Divisors(60)) != 12 {
		t.Fatal("Divisors(60)")
	}
}

func TestGCD(t *testing.T) {
	cases := [][3]int{{12, 18, 6}, {7, 13, 1}, {0, 5, 5}, {5, 0, 5}, {8, 8, 8}}
	for _, c := range cases {
		if g := combinat.GCD(c[0], c[1]); g != c[2] {
			t.Fatalf("GCD(%d, %d) = %d, want %d", c[0], c[1], g, c[2])
		}
	}
}

func TestCounts(t *testing.T) {
	if combinat.Factorial(10).Int64() != 3628800 {
		t.Fatal("10!")
	}
	if combinat.Factorial(0).Int64() != 1 {
		t.Fatal("0!")
	}
	if combinat.Binomial(10, 3).Int64() != 120 {
		t.Fatal("C(10,3)")
	}
	if combinat.Multinomial([]int{3, 3, 2}).Int64() != 560 {
		t.Fatal("8!/(3!3!2!)")
	}
	if combinat.FactorialProd([]int{2, 3, 1}).Int64() != 12 {
		t.Fatal("2!*3!*1!")
	}
	if combinat.Multichoose(big.NewInt(4), 2).Int64() != 10 {
		t.Fatal("multichoose(4,2)")
	}
	if combinat.Multichoose(big.NewInt(9), 0).Int64() != 1 {
		t.Fatal("multichoose(n,0)")
	}
}

func TestPartitionCounts(t *testing.T) {
	pn := combinat.PartitionNumbers(30)
	want := []int64{1, 1, 2, 3, 5, 7, 11, 15, 22, 30, 42}
	for n, w := range want {
		if pn[n].Int64() != w {
			t.Fatalf("p(%d) = %v, want %d", n, pn[n], w)
		}
	}
	if pn[30].Int64() != 5604 {
		t.Fatalf("p(30) = %v", pn[30])
	}

	// The enumerator agrees with the closed-form counts.
	for n := 0; n <= 15; n++ {
		seen := 0
		combinat.Partitions(n, func(parts []int) bool {
			sum := 0
			prev := n + 1
			for _, p := range parts {
				if p < 1 || p > prev {
					t.Fatalf("bad partition of %d: %v", n, parts)
				}
				prev = p
				sum += p
			}
			if sum != n {
				t.Fatalf("partition of %d sums to %d", n, sum)
			}
			seen++
			return true
		})
		if int64(seen) != pn[n].Int64() {
			t.Fatalf("enumerated %d partitions of %d, want %v", seen, n, pn[n])
		}
	}
}

func TestFixedLengthPartitions(t *testing.T) {
	// Partitions of 10 into exactly 3 parts: 8.
	seen := 0
	combinat.FixedLengthPartitions(10, 3, func(parts []int) bool {
		if len(parts) != 3 {
			t.Fatalf("bad length: %v", parts)
		}
		if parts[0]+parts[1]+parts[2] != 10 {
			t.Fatalf("bad sum: %v", parts)
		}
		if parts[0] < parts[1] || parts[1] < parts[2] || parts[2] < 1 {
			t.Fatalf("not descending positive: %v", parts)
		}
		seen++
		return true
	})
	if seen != 8 {
		t.Fatalf("got %d partitions of 10 into 3 parts, want 8", seen)
	}

	combinat.FixedLengthPartitions(2, 3, func(parts []int) bool {
		t.Fatalf("2 cannot split into 3 positive parts: %v", parts)
		return false
	})
}

func TestTuplePartitions(t *testing.T) {
	seen := 0
	combinat.TuplePartitions(6, func(b []int) bool {
		if len(b) != 7 {
			t.Fatalf("exponent vector has length %d", len(b))
		}
		sum := 0
		for i, c := range b {
			sum += i * c
		}
		if sum != 6 {
			t.Fatalf("bad exponent vector: %v", b)
		}
		seen++
		return true
	})
	if seen != 11 {
		t.Fatalf("got %d tuple partitions of 6, want 11", seen)
	}
}

func TestWeakCompositions(t *testing.T) {
	// C(n+k-1, k-1) weak compositions of n into k parts.
	seen := 0
	combinat.WeakCompositions(5, 3, func(comp []int) bool {
		if comp[0]+comp[1]+comp[2] != 5 {
			t.Fatalf("bad composition: %v", comp)
		}
		seen++
		return true
	})
	if seen != 21 {
		t.Fatalf("got %d weak compositions, want 21", seen)
	}

	seen = 0
	combinat.WeakCompositions(0, 0, func(comp []int) bool {
		seen++
		return true
	})
	if seen != 1 {
		t.Fatal("WeakCompositions(0, 0) should emit once")
	}
}

func TestCompositions(t *testing.T) {
	for n := 1; n <= 10; n++ {
		seen := 0
		combinat.Compositions(n, func(comp []int) bool {
			sum := 0
			for _, p := range comp {
				if p < 1 {
					t.Fatalf("bad composition of %d: %v", n, comp)
				}
				sum += p
			}
			if sum != n {
				t.Fatalf("composition of %d sums to %d", n, sum)
			}
			seen++
			return true
		})
		if seen != 1<<(n-1) {
			t.Fatalf("got %d compositions of %d, want %d", seen, n, 1<<(n-1))
		}
	}
}

func TestCombinationsWR(t *testing.T) {
	seen := 0
	combinat.CombinationsWR(4, 2, func(combo []int) bool {
		if combo[0] > combo[1] {
			t.Fatalf("not non-decreasing: %v", combo)
		}
		seen++
		return true
	})
	if seen != 10 {
		t.Fatalf("got %d combinations, want 10", seen)
	}
}

func TestIncreasingRuns(t *testing.T) {
	runs := combinat.IncreasingRuns([]int{1, 2, 3, 2, 3, 1, 1})
	want := [][]int{{1, 2, 3}, {2, 3}, {1}, {1}}
	if len(runs) != len(want) {
		t.Fatalf("runs = %v", runs)
	}
	for i := range want {
		if len(runs[i]) != len(want[i]) {
			t.Fatalf("runs = %v", runs)
		}
		for j := range want[i] {
			if runs[i][j] != want[i][j] {
				t.Fatalf("runs = %v", runs)
			}
		}
	}
	if combinat.IncreasingRuns(nil) != nil {
		t.Fatal("runs of empty sequence")
	}
}
