package fixedpoint

import "math/big"

// expDecayCutoff is the input above which ExpDecay short-circuits to 0.
// The truncated Taylor series only approximates e^-u near zero; for large
// inputs the polynomial diverges, so decay is treated as complete.
var expDecayCutoff = FromInt(100)

// taylorTerms is the number of Taylor-series terms used by ExpDecay.
const taylorTerms = 6

// ExpDecay approximates e^(-x/tau) using the first six terms of the
// Taylor expansion of e^-u, where u = x/tau in fixed-point form:
//
//	result = 1; term = 1
//	for i = 1..6: term = term * u / i; odd i subtract, even i add
//
// Edge policy: x <= 0 returns 1.0 (no decay); x >= 100 returns 0 (fully
// decayed); the final result is clamped to be non-negative. This
// polynomial, including its truncation behavior, is the authoritative
// decay curve for plasticity — not a true exponential.
func ExpDecay(x, tau Value) (Value, error) {
	if tau.IsZero() {
		return Value{}, ErrDivisionByZero
	}
	if x.Sign() <= 0 {
		return One(), nil
	}
	if x.Cmp(expDecayCutoff) >= 0 {
		return Zero(), nil
	}

	u, err := x.Div(tau)
	if err != nil {
		return Value{}, err
	}

	result := One().big()
	term := One().big()
	uRaw := u.big()
	for i := int64(1); i <= taylorTerms; i++ {
		term = new(big.Int).Mul(term, uRaw)
		term.Quo(term, new(big.Int).Mul(big.NewInt(i), scale))
		if i%2 == 1 {
			result.Sub(result, term)
		} else {
			result.Add(result, term)
		}
	}
	if result.Sign() < 0 {
		result.SetInt64(0)
	}
	return Value{n: result}, nil
}
