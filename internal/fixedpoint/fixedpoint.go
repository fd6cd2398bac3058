// Package fixedpoint implements scaled-integer arithmetic with a fixed
// scale of 10^18. All real-valued quantities in the engine (membrane
// potentials, synapse weights, concept activations) are represented as
// integers holding real_value * 10^18, so the simulation runs without any
// floating-point arithmetic. Values are backed by math/big integers:
// weights span up to 1000 * 10^18, beyond the int64 range, and
// intermediate products before rescaling grow far larger still.
package fixedpoint

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ScaleDigits is the number of decimal digits in the scale factor.
const ScaleDigits = 18

// ErrDivisionByZero is returned by Div when the divisor is zero, and by
// ExpDecay when the time constant is zero.
var ErrDivisionByZero = errors.New("fixed-point division by zero")

// scale is the fixed scale factor 10^18. Never mutated.
var scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(ScaleDigits), nil)

// Value is an immutable fixed-point number. The zero Value is 0.
// All operations return fresh Values and never mutate their operands.
type Value struct {
	n *big.Int
}

// big returns the backing integer, treating the zero Value as 0.
// Callers must not mutate the result.
func (v Value) big() *big.Int {
	if v.n == nil {
		return new(big.Int)
	}
	return v.n
}

// Zero returns the fixed-point value 0.
func Zero() Value { return Value{} }

// One returns the fixed-point value 1.0 (the scale itself).
func One() Value { return Value{n: new(big.Int).Set(scale)} }

// Scale returns the scale factor 10^18 as a Value (numerically 1.0).
func Scale() Value { return One() }

// FromInt returns the fixed-point representation of the integer i.
func FromInt(i int64) Value {
	return Value{n: new(big.Int).Mul(big.NewInt(i), scale)}
}

// FromRaw wraps an already-scaled integer. The argument is copied.
func FromRaw(n *big.Int) Value {
	return Value{n: new(big.Int).Set(n)}
}

// FromRawInt64 wraps an already-scaled int64.
func FromRawInt64(n int64) Value {
	return Value{n: big.NewInt(n)}
}

// Raw returns a copy of the underlying scaled integer.
func (v Value) Raw() *big.Int { return new(big.Int).Set(v.big()) }

// Add returns v + o.
func (v Value) Add(o Value) Value {
	return Value{n: new(big.Int).Add(v.big(), o.big())}
}

// Sub returns v - o.
func (v Value) Sub(o Value) Value {
	return Value{n: new(big.Int).Sub(v.big(), o.big())}
}

// Neg returns -v.
func (v Value) Neg() Value {
	return Value{n: new(big.Int).Neg(v.big())}
}

// Abs returns |v|.
func (v Value) Abs() Value {
	return Value{n: new(big.Int).Abs(v.big())}
}

// Mul returns v * o, rescaled: (v.n * o.n) / 10^18.
// The intermediate product is exact; truncation toward zero happens only
// at the final rescale, matching integer division semantics.
func (v Value) Mul(o Value) Value {
	p := new(big.Int).Mul(v.big(), o.big())
	return Value{n: p.Quo(p, scale)}
}

// Div returns v / o, rescaled: (v.n * 10^18) / o.n.
// Returns ErrDivisionByZero when o is zero.
func (v Value) Div(o Value) (Value, error) {
	if o.big().Sign() == 0 {
		return Value{}, ErrDivisionByZero
	}
	p := new(big.Int).Mul(v.big(), scale)
	return Value{n: p.Quo(p, o.big())}, nil
}

// MulInt returns v * k for a plain integer k (no rescale needed).
func (v Value) MulInt(k int64) Value {
	return Value{n: new(big.Int).Mul(v.big(), big.NewInt(k))}
}

// DivInt returns v / k for a plain non-zero integer k, truncating toward
// zero. The scale is unchanged.
func (v Value) DivInt(k int64) (Value, error) {
	if k == 0 {
		return Value{}, ErrDivisionByZero
	}
	return Value{n: new(big.Int).Quo(v.big(), big.NewInt(k))}, nil
}

// Cmp compares v and o, returning -1, 0, or +1.
func (v Value) Cmp(o Value) int { return v.big().Cmp(o.big()) }

// Sign returns -1, 0, or +1 for negative, zero, or positive v.
func (v Value) Sign() int { return v.big().Sign() }

// IsZero reports whether v is exactly 0.
func (v Value) IsZero() bool { return v.big().Sign() == 0 }

// Equal reports whether v and o are numerically identical.
func (v Value) Equal(o Value) bool { return v.Cmp(o) == 0 }

// Clamp restricts v to [min, max].
func (v Value) Clamp(min, max Value) Value {
	if v.Cmp(min) < 0 {
		return FromRaw(min.big())
	}
	if v.Cmp(max) > 0 {
		return FromRaw(max.big())
	}
	return FromRaw(v.big())
}

// Percent returns v expressed as an integer percentage of 1.0,
// truncated toward zero: (v * 100) / 10^18.
func (v Value) Percent() int64 {
	p := new(big.Int).Mul(v.big(), big.NewInt(100))
	p.Quo(p, scale)
	return p.Int64()
}

// String renders v as a decimal number with up to 18 fractional digits,
// trailing zeros trimmed: "0", "0.5", "-12.25".
func (v Value) String() string {
	n := v.big()
	if n.Sign() == 0 {
		return "0"
	}
	sign := ""
	abs := new(big.Int).Abs(n)
	if n.Sign() < 0 {
		sign = "-"
	}
	intPart, fracPart := new(big.Int).QuoRem(abs, scale, new(big.Int))
	if fracPart.Sign() == 0 {
		return sign + intPart.String()
	}
	frac := fmt.Sprintf("%0*s", ScaleDigits, fracPart.String())
	frac = strings.TrimRight(frac, "0")
	return sign + intPart.String() + "." + frac
}

// Parse converts a decimal string such as "0.5" or "-12.25" into a Value.
// At most 18 fractional digits are accepted.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("parse fixed-point: empty string")
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	intStr, fracStr := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intStr, fracStr = s[:dot], s[dot+1:]
	}
	if intStr == "" && fracStr == "" {
		return Value{}, fmt.Errorf("parse fixed-point: %q has no digits", s)
	}
	if len(fracStr) > ScaleDigits {
		return Value{}, fmt.Errorf("parse fixed-point: %q exceeds %d fractional digits", s, ScaleDigits)
	}
	if intStr == "" {
		intStr = "0"
	}
	intPart, ok := new(big.Int).SetString(intStr, 10)
	if !ok {
		return Value{}, fmt.Errorf("parse fixed-point: invalid integer part %q", intStr)
	}
	n := intPart.Mul(intPart, scale)
	if fracStr != "" {
		// Right-pad the fractional digits to the full scale width.
		padded := fracStr + strings.Repeat("0", ScaleDigits-len(fracStr))
		fracPart, ok := new(big.Int).SetString(padded, 10)
		if !ok {
			return Value{}, fmt.Errorf("parse fixed-point: invalid fractional part %q", fracStr)
		}
		n.Add(n, fracPart)
	}
	if neg {
		n.Neg(n)
	}
	return Value{n: n}, nil
}

// MarshalJSON encodes the raw scaled integer as a decimal string, which
// round-trips losslessly regardless of magnitude.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.big().String() + `"`), nil
}

// UnmarshalJSON decodes a raw scaled integer from a JSON string or number.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("unmarshal fixed-point: invalid raw value %q", s)
	}
	v.n = n
	return nil
}
