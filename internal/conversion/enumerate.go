// Package conversion enumerates the arithmetic relationships between
// registered units: every ordered pair whose product or quotient lands
// on another registered unit's dimension.
package conversion

import (
	"github.com/forgelabs/unitforge/internal/identity"
	"github.com/forgelabs/unitforge/internal/registry"
)

// Fact states that combining unit A with unit B via multiplication
// (Mul true) or division (Mul false) yields the registered unit Result.
type Fact struct {
	A      string `toml:"a" json:"a"`
	B      string `toml:"b" json:"b"`
	Result string `toml:"result" json:"result"`
	Mul    bool   `toml:"mul" json:"mul"`
}

// Enumerate returns every derivable fact over the finished registry.
//
// Every ordered pair is scanned, including a unit with itself, so
// multiplication facts come out symmetrically (a*b=c and b*a=c) and
// division facts include the inverse relations a consumer needs to
// recover an operand from a result. The scan is quadratic in the
// number of units and deliberately single-step: units reachable only
// through chains of operations are not discovered, which keeps the
// output contract stable. Downstream consumers group or deduplicate as
// they see fit.
func Enumerate(reg *registry.Registry) []Fact {
	names := reg.Names()
	var facts []Fact

	for _, a := range names {
		aid, _ := reg.Identity(a)
		for _, b := range names {
			bid, _ := reg.Identity(b)

			if result, ok := reg.NameFor(identity.Mul(aid, bid)); ok {
				facts = append(facts, Fact{A: a, B: b, Result: result, Mul: true})
			}
			if result, ok := reg.NameFor(identity.Div(aid, bid)); ok {
				facts = append(facts, Fact{A: a, B: b, Result: result, Mul: false})
			}
		}
	}

	return facts
}

// GroupByOperand indexes facts by their first operand, the shape code
// generators consume to emit all operators defined on one unit type.
func GroupByOperand(facts []Fact) map[string][]Fact {
	grouped := make(map[string][]Fact)
	for _, f := range facts {
		grouped[f.A] = append(grouped[f.A], f)
	}
	return grouped
}
