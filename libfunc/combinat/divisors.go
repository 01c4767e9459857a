package combinat

import (
	"sort"
	"sync"
)

// PrimeFactorization returns the prime factors of n in ascending order,
// with multiplicity.
func PrimeFactorization(n int) []int {
	var factors []int
	for d := 2; d*d <= n; d++ {
		for n%d == 0 {
			factors = append(factors, d)
			n /= d
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// Divisors returns every divisor of n in ascending order.
// Divisors(0) is empty; Divisors(1) is [1].
func Divisors(n int) []int {
	if n < 1 {
		return nil
	}
	var divs []int
	for d := 1; d*d <= n; d++ {
		if n%d == 0 {
			divs = append(divs, d)
			if d != n/d {
				divs = append(divs, n/d)
			}
		}
	}
	sort.Ints(divs)
	return divs
}

// DivisorCache memoizes divisor tables.  The caller owns the lifetime: an
// enumeration session creates one and drops it when done, or a process keeps
// a single shared instance.  There is no package-level cache.
type DivisorCache struct {
	mu   sync.Mutex
	divs map[int][]int
}

func NewDivisorCache() *DivisorCache {
	return &DivisorCache{
		divs: make(map[int][]int),
	}
}

// Divisors returns the cached divisor table of n, computing it on first use.
// The returned slice is shared and must not be modified.
func (dc *DivisorCache) Divisors(n int) []int {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	divs, found := dc.divs[n]
	if !found {
		divs = Divisors(n)
		dc.divs[n] = divs
	}
	return divs
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
