package combinat

import "math/big"

// Partitions enumerates the integer partitions of n with parts in descending
// order, invoking fn once per partition.  The slice passed to fn is reused
// between calls; copy it if it must survive.  Enumeration stops early if fn
// returns false.
func Partitions(n int, fn func(parts []int) bool) {
	if n < 0 {
		return
	}
	parts := make([]int, 0, n)
	var recurse func(left, limit int) bool
	recurse = func(left, limit int) bool {
		if left == 0 {
			return fn(parts)
		}
		if limit > left {
			limit = left
		}
		for p := limit; p >= 1; p-- {
			parts = append(parts, p)
			more := recurse(left-p, p)
			parts = parts[:len(parts)-1]
			if !more {
				return false
			}
		}
		return true
	}
	recurse(n, n)
}

// FixedLengthPartitions enumerates the partitions of n into exactly w
// positive parts, descending within each partition.  The slice passed to fn
// is reused between calls.
func FixedLengthPartitions(n, w int, fn func(parts []int) bool) {
	if w == 0 {
		if n == 0 {
			fn(nil)
		}
		return
	}
	if n < w {
		return
	}
	parts := make([]int, 0, w)
	var recurse func(left, slots, limit int) bool
	recurse = func(left, slots, limit int) bool {
		if slots == 0 {
			return fn(parts)
		}
		if limit > left-slots+1 {
			limit = left - slots + 1
		}
		// Each remaining slot needs at least one node, so the next part is
		// at least ceil(left/slots) to keep parts descending.
		for p := limit; p*slots >= left; p-- {
			parts = append(parts, p)
			more := recurse(left-p, slots-1, p)
			parts = parts[:len(parts)-1]
			if !more {
				return false
			}
		}
		return true
	}
	recurse(n, w, n)
}

// TuplePartitions enumerates the partitions of n as exponent vectors:
// fn receives a slice b of length n+1 where b[i] is the number of parts
// equal to i, so that sum(i*b[i]) == n.  The slice is reused between calls.
func TuplePartitions(n int, fn func(b []int) bool) {
	b := make([]int, n+1)
	Partitions(n, func(parts []int) bool {
		for i := range b {
			b[i] = 0
		}
		for _, p := range parts {
			b[p]++
		}
		return fn(b)
	})
}

// PartitionNumbers returns the partition counts p(0)..p(n) using Euler's
// pentagonal number recurrence.
func PartitionNumbers(n int) []*big.Int {
	counts := make([]*big.Int, n+1)
	counts[0] = big.NewInt(1)
	for m := 1; m <= n; m++ {
		pm := new(big.Int)
		for k := 1; ; k++ {
			g1 := k * (3*k - 1) / 2
			g2 := k * (3*k + 1) / 2
			if g1 > m && g2 > m {
				break
			}
			sign := 1
			if k%2 == 0 {
				sign = -1
			}
			if g1 <= m {
				if sign > 0 {
					pm.Add(pm, counts[m-g1])
				} else {
					pm.Sub(pm, counts[m-g1])
				}
			}
			if g2 <= m {
				if sign > 0 {
					pm.Add(pm, counts[m-g2])
				} else {
					pm.Sub(pm, counts[m-g2])
				}
			}
		}
		counts[m] = pm
	}
	return counts
}
