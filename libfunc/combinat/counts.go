package combinat

import "math/big"

// Factorial returns n! as an exact integer.
func Factorial(n int) *big.Int {
	if n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, int64(n))
}

// FactorialProd returns the product of the factorials of vals.
func FactorialProd(vals []int) *big.Int {
	prod := big.NewInt(1)
	for _, v := range vals {
		prod.Mul(prod, Factorial(v))
	}
	return prod
}

// Binomial returns n choose k.
func Binomial(n, k int) *big.Int {
	if k < 0 || k > n {
		return big.NewInt(0)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}

// Multinomial returns the multinomial coefficient of the parts:
// (p1+...+pk)! / (p1! * ... * pk!).
func Multinomial(parts []int) *big.Int {
	total := 0
	for _, p := range parts {
		total += p
	}
	coeff := Factorial(total)
	return coeff.Div(coeff, FactorialProd(parts))
}

// Multichoose returns the number of multisets of size r drawn from n
// distinct items: C(n+r-1, r).  n may be arbitrarily large (tree counts
// routinely overflow int64).
func Multichoose(n *big.Int, r int) *big.Int {
	val := big.NewInt(1)
	term := new(big.Int)
	for i := 1; i <= r; i++ {
		// val *= (n + r - i); val /= i  -- exact at every step
		term.Add(n, big.NewInt(int64(r-i)))
		val.Mul(val, term)
		val.Div(val, big.NewInt(int64(i)))
	}
	return val
}
