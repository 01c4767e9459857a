package combinat

// CombinationsWR enumerates the non-decreasing index tuples of length k
// drawn from [0,n): the unordered selections with repetition.  The slice
// passed to fn is reused between calls.  Returns false if fn stopped the
// enumeration.
func CombinationsWR(n, k int, fn func(combo []int) bool) bool {
	combo := make([]int, k)
	var recurse func(pos, start int) bool
	recurse = func(pos, start int) bool {
		if pos == k {
			return fn(combo)
		}
		for i := start; i < n; i++ {
			combo[pos] = i
			if !recurse(pos+1, i) {
				return false
			}
		}
		return true
	}
	return recurse(0, 0)
}

// IncreasingRuns partitions seq into its maximal strictly increasing
// subsequences, in order.  The returned runs are subslices of seq.
func IncreasingRuns(seq []int) [][]int {
	var runs [][]int
	start := 0
	for i := 1; i <= len(seq); i++ {
		if i == len(seq) || seq[i] <= seq[i-1] {
			runs = append(runs, seq[start:i])
			start = i
		}
	}
	return runs
}
