// Package identity implements the canonical dimensional signature of a
// physical unit: a ratio of two base-unit exponent multisets, always
// held in lowest terms. Two units are dimensionally equivalent exactly
// when their identities are equal, so identities double as collision
// keys during registration.
package identity

import (
	"fmt"
	"sort"
	"strings"
)

// Factor is a single base-unit exponent within one side of an identity.
type Factor struct {
	Base string
	Exp  int
}

// Identity is the dimensional signature of a unit. The numerator and
// denominator are kept sorted by base-unit name and reduced: no base
// unit ever appears on both sides at once. The zero value is the
// dimensionless identity. Identities are immutable; every operation
// returns a new value.
type Identity struct {
	num []Factor
	den []Factor
}

// Base returns the identity of a base unit: the unit itself at
// exponent 1 over an empty denominator.
func Base(name string) Identity {
	return Identity{num: []Factor{{Base: name, Exp: 1}}}
}

// FromRatio builds a reduced identity from arbitrary numerator and
// denominator factor lists. Repeated base names are summed, common
// exponents between the two sides are canceled, and zero exponents are
// dropped. Reduction is idempotent: feeding an identity's own factors
// back in reproduces it.
func FromRatio(num, den []Factor) Identity {
	return reduce(toExponents(num), toExponents(den))
}

// Mul returns the product of two identities: exponent-wise sums of the
// numerators and of the denominators, reduced.
func Mul(a, b Identity) Identity {
	num := toExponents(a.num)
	addExponents(num, b.num)
	den := toExponents(a.den)
	addExponents(den, b.den)
	return reduce(num, den)
}

// Div returns the quotient a/b: a's numerator joins b's denominator and
// vice versa, reduced.
func Div(a, b Identity) Identity {
	num := toExponents(a.num)
	addExponents(num, b.den)
	den := toExponents(a.den)
	addExponents(den, b.num)
	return reduce(num, den)
}

// Equal reports whether two identities have the same reduced numerator
// and denominator.
func (id Identity) Equal(other Identity) bool {
	return factorsEqual(id.num, other.num) && factorsEqual(id.den, other.den)
}

// IsZero reports whether the identity is dimensionless (the zero value).
func (id Identity) IsZero() bool {
	return len(id.num) == 0 && len(id.den) == 0
}

// Numerator returns a copy of the numerator factors, sorted by base name.
func (id Identity) Numerator() []Factor {
	return append([]Factor(nil), id.num...)
}

// Denominator returns a copy of the denominator factors, sorted by base name.
func (id Identity) Denominator() []Factor {
	return append([]Factor(nil), id.den...)
}

// Key returns the canonical string form of the identity, suitable as a
// map key. Equal identities always produce the same key because both
// sides are reduced and sorted.
func (id Identity) Key() string {
	if id.IsZero() {
		return "1"
	}
	var b strings.Builder
	writeSide(&b, id.num)
	if len(id.den) > 0 {
		b.WriteByte('/')
		writeSide(&b, id.den)
	}
	return b.String()
}

// String renders the identity for diagnostics. It is identical to Key;
// exponent 1 is written explicitly so that keys stay unambiguous
// (Length^1 vs a hypothetical base named "Length1").
func (id Identity) String() string {
	return id.Key()
}

func writeSide(b *strings.Builder, side []Factor) {
	if len(side) == 0 {
		b.WriteByte('1')
		return
	}
	for i, f := range side {
		if i > 0 {
			b.WriteByte('*')
		}
		fmt.Fprintf(b, "%s^%d", f.Base, f.Exp)
	}
}

// toExponents expands a sorted factor slice into a mutable exponent map.
func toExponents(side []Factor) map[string]int {
	m := make(map[string]int, len(side))
	for _, f := range side {
		m[f.Base] += f.Exp
	}
	return m
}

// addExponents sums the given factors into an exponent map in place.
func addExponents(m map[string]int, side []Factor) {
	for _, f := range side {
		m[f.Base] += f.Exp
	}
}

// reduce cancels exponents common to numerator and denominator, drops
// zero entries, and returns the identity in sorted canonical form.
// Cancellation only ever happens between the two sides, never within
// one side.
func reduce(num, den map[string]int) Identity {
	for base, n := range num {
		d, ok := den[base]
		if !ok {
			continue
		}
		switch {
		case n == d:
			delete(num, base)
			delete(den, base)
		case n > d:
			num[base] = n - d
			delete(den, base)
		default:
			den[base] = d - n
			delete(num, base)
		}
	}
	return Identity{num: toFactors(num), den: toFactors(den)}
}

// toFactors converts an exponent map into a sorted factor slice,
// skipping zero exponents.
func toFactors(m map[string]int) []Factor {
	if len(m) == 0 {
		return nil
	}
	out := make([]Factor, 0, len(m))
	for base, exp := range m {
		if exp == 0 {
			continue
		}
		out = append(out, Factor{Base: base, Exp: exp})
	}
	if len(out) == 0 {
		return nil
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base < out[j].Base })
	return out
}

func factorsEqual(a, b []Factor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
