package combinat

// WeakCompositions enumerates the ordered length-k lists of non-negative
// integers summing to n.  The slice passed to fn is reused between calls.
func WeakCompositions(n, k int, fn func(comp []int) bool) {
	if n < 0 || k < 0 {
		return
	}
	comp := make([]int, k)
	var recurse func(pos, left int) bool
	recurse = func(pos, left int) bool {
		if pos == k-1 {
			comp[pos] = left
			return fn(comp)
		}
		for i := 0; i <= left; i++ {
			comp[pos] = i
			if !recurse(pos+1, left-i) {
				return false
			}
		}
		return true
	}
	if k == 0 {
		if n == 0 {
			fn(comp)
		}
		return
	}
	recurse(0, n)
}

// Compositions enumerates the ordered lists of positive integers summing
// to n.  There are 2^(n-1) of them.  The slice passed to fn is reused.
func Compositions(n int, fn func(comp []int) bool) {
	if n < 1 {
		return
	}
	comp := []int{n}
	for len(comp) > 0 {
		if !fn(comp) {
			return
		}
		j := len(comp)
		for k := j - 1; k >= 0; k-- {
			if comp[k] > 1 {
				comp[k]--
				comp = append(comp, j-k)
				break
			}
			comp = comp[:len(comp)-1]
		}
	}
}
