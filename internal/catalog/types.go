package catalog

// Catalog is parsed from units.toml: the full set of unit declarations
// handed to the resolver.
type Catalog struct {
	Info      Info          `toml:"catalog"`
	Base      []BaseUnit    `toml:"base"`
	Products  []DerivedUnit `toml:"product"`
	Quotients []DerivedUnit `toml:"quotient"`

	SourceFile string `toml:"-"` // Relative path for error context
}

// Info holds the catalog's name and description from the [catalog] table.
type Info struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// BaseUnit declares an irreducible unit representing one fundamental
// physical dimension. Display metadata is carried through untouched for
// downstream generators; only the name participates in the algebra.
type BaseUnit struct {
	Name        string `toml:"name"`
	Symbol      string `toml:"symbol"`
	Description string `toml:"description"`
}

// DerivedUnit declares a unit defined from two other units. Under
// [[product]] the unit equals Primary * Secondary; under [[quotient]]
// it equals Primary / Secondary (dividend over divisor). Operands may
// name base or derived units, declared in any order.
type DerivedUnit struct {
	Name        string `toml:"name"`
	Primary     string `toml:"primary"`
	Secondary   string `toml:"secondary"`
	Symbol      string `toml:"symbol"`
	Description string `toml:"description"`
}

// Op is the combination mode of a derived unit.
type Op string

const (
	OpMul Op = "mul"
	OpDiv Op = "div"
)

// Derivation is a derived declaration flattened with its combination
// mode, the form the resolver consumes.
type Derivation struct {
	Name      string
	Primary   string
	Secondary string
	Op        Op
}

// Derivations returns all derived declarations in declaration order,
// products first, each tagged with its combination mode.
func (c *Catalog) Derivations() []Derivation {
	out := make([]Derivation, 0, len(c.Products)+len(c.Quotients))
	for _, d := range c.Products {
		out = append(out, Derivation{Name: d.Name, Primary: d.Primary, Secondary: d.Secondary, Op: OpMul})
	}
	for _, d := range c.Quotients {
		out = append(out, Derivation{Name: d.Name, Primary: d.Primary, Secondary: d.Secondary, Op: OpDiv})
	}
	return out
}

// Names returns the set of all declared unit names, base and derived.
func (c *Catalog) Names() map[string]bool {
	names := make(map[string]bool, len(c.Base)+len(c.Products)+len(c.Quotients))
	for _, b := range c.Base {
		names[b.Name] = true
	}
	for _, d := range c.Derivations() {
		names[d.Name] = true
	}
	return names
}
