package registry

import (
	"errors"
	"testing"

	"github.com/forgelabs/unitforge/internal/catalog"
	"github.com/forgelabs/unitforge/internal/identity"
)

func kinematics() *catalog.Catalog {
	return &catalog.Catalog{
		Info: catalog.Info{Name: "kinematics"},
		Base: []catalog.BaseUnit{
			{Name: "Length"},
			{Name: "Duration"},
		},
		Quotients: []catalog.DerivedUnit{
			{Name: "Velocity", Primary: "Length", Secondary: "Duration"},
			{Name: "Acceleration", Primary: "Velocity", Secondary: "Duration"},
		},
	}
}

func TestResolveConcreteScenario(t *testing.T) {
	t.Parallel()

	reg, report := Resolve(kinematics())
	if !report.OK() {
		t.Fatalf("unexpected report errors: %v", report.Errors)
	}
	if reg.Len() != 4 {
		t.Fatalf("registered %d units, want 4", reg.Len())
	}

	accel, ok := reg.Identity("Acceleration")
	if !ok {
		t.Fatal("Acceleration not registered")
	}
	want := identity.FromRatio(
		[]identity.Factor{{Base: "Length", Exp: 1}},
		[]identity.Factor{{Base: "Duration", Exp: 2}},
	)
	if !accel.Equal(want) {
		t.Errorf("Acceleration identity = %s, want %s", accel, want)
	}

	// Inverse lookup recovers the name from the identity.
	if name, ok := reg.NameFor(want); !ok || name != "Acceleration" {
		t.Errorf("NameFor(%s) = %q, %v; want Acceleration, true", want, name, ok)
	}
}

func TestResolveBaseIdentities(t *testing.T) {
	t.Parallel()

	reg, report := Resolve(kinematics())
	if !report.OK() {
		t.Fatalf("unexpected report errors: %v", report.Errors)
	}

	for _, name := range []string{"Length", "Duration"} {
		id, ok := reg.Identity(name)
		if !ok {
			t.Fatalf("%s not registered", name)
		}
		if !id.Equal(identity.Base(name)) {
			t.Errorf("identity(%s) = %s, want %s", name, id, identity.Base(name))
		}
	}

	lid, _ := reg.Identity("Length")
	did, _ := reg.Identity("Duration")
	if lid.Equal(did) {
		t.Error("distinct base units must not share an identity")
	}
}

func TestResolveOutOfOrder(t *testing.T) {
	t.Parallel()

	// Volume depends on Area, declared after it. Resolution must not
	// care about declaration order.
	cat := &catalog.Catalog{
		Info: catalog.Info{Name: "geometry"},
		Base: []catalog.BaseUnit{{Name: "Length"}},
		Products: []catalog.DerivedUnit{
			{Name: "Volume", Primary: "Area", Secondary: "Length"},
			{Name: "Area", Primary: "Length", Secondary: "Length"},
		},
	}

	reg, report := Resolve(cat)
	if !report.OK() {
		t.Fatalf("unexpected report errors: %v", report.Errors)
	}

	vol, ok := reg.Identity("Volume")
	if !ok {
		t.Fatal("Volume not registered")
	}
	want := identity.FromRatio([]identity.Factor{{Base: "Length", Exp: 3}}, nil)
	if !vol.Equal(want) {
		t.Errorf("Volume identity = %s, want %s", vol, want)
	}
}

func TestResolveDeterminism(t *testing.T) {
	t.Parallel()

	// Same declarations in different orders must produce identical
	// registries: the fixpoint has no value-dependent branching.
	forward := &catalog.Catalog{
		Info: catalog.Info{Name: "kinematics"},
		Base: []catalog.BaseUnit{{Name: "Length"}, {Name: "Duration"}, {Name: "Mass"}},
		Products: []catalog.DerivedUnit{
			{Name: "Momentum", Primary: "Mass", Secondary: "Velocity"},
			{Name: "Area", Primary: "Length", Secondary: "Length"},
		},
		Quotients: []catalog.DerivedUnit{
			{Name: "Velocity", Primary: "Length", Secondary: "Duration"},
			{Name: "Acceleration", Primary: "Velocity", Secondary: "Duration"},
		},
	}
	backward := &catalog.Catalog{
		Info: forward.Info,
		Base: []catalog.BaseUnit{{Name: "Mass"}, {Name: "Duration"}, {Name: "Length"}},
		Products: []catalog.DerivedUnit{
			{Name: "Area", Primary: "Length", Secondary: "Length"},
			{Name: "Momentum", Primary: "Mass", Secondary: "Velocity"},
		},
		Quotients: []catalog.DerivedUnit{
			{Name: "Acceleration", Primary: "Velocity", Secondary: "Duration"},
			{Name: "Velocity", Primary: "Length", Secondary: "Duration"},
		},
	}

	regA, reportA := Resolve(forward)
	regB, reportB := Resolve(backward)
	if !reportA.OK() || !reportB.OK() {
		t.Fatalf("unexpected report errors: %v / %v", reportA.Errors, reportB.Errors)
	}

	namesA, namesB := regA.Names(), regB.Names()
	if len(namesA) != len(namesB) {
		t.Fatalf("registries differ in size: %d vs %d", len(namesA), len(namesB))
	}
	for i, name := range namesA {
		if namesB[i] != name {
			t.Fatalf("name sets differ: %v vs %v", namesA, namesB)
		}
		idA, _ := regA.Identity(name)
		idB, _ := regB.Identity(name)
		if !idA.Equal(idB) {
			t.Errorf("identity(%s) differs: %s vs %s", name, idA, idB)
		}
	}

	// Resolving the same catalog twice is likewise identical.
	regC, _ := Resolve(forward)
	for _, name := range namesA {
		idA, _ := regA.Identity(name)
		idC, _ := regC.Identity(name)
		if !idA.Equal(idC) {
			t.Errorf("repeated resolution differs for %s: %s vs %s", name, idA, idC)
		}
	}
}

func TestResolveRoundTrip(t *testing.T) {
	t.Parallel()

	// Z = X * Y, then W = Z / Y must land W back on X's dimension and
	// therefore collide with it.
	cat := &catalog.Catalog{
		Info: catalog.Info{Name: "roundtrip"},
		Base: []catalog.BaseUnit{{Name: "X"}, {Name: "Y"}},
		Products: []catalog.DerivedUnit{
			{Name: "Z", Primary: "X", Secondary: "Y"},
		},
		Quotients: []catalog.DerivedUnit{
			{Name: "W", Primary: "Z", Secondary: "Y"},
		},
	}

	_, report := Resolve(cat)
	if report.OK() {
		t.Fatal("expected a duplicate-dimension error, got clean report")
	}
	if len(report.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(report.Errors), report.Errors)
	}

	e := report.Errors[0]
	if !errors.Is(&e, ErrDuplicateDimension) {
		t.Fatalf("got %v, want ErrDuplicateDimension", e.Err)
	}
	if e.Unit != "W" || e.Other != "X" {
		t.Errorf("duplicate names = (%q, %q), want (W, X)", e.Unit, e.Other)
	}
	if e.Identity != identity.Base("X").Key() {
		t.Errorf("shared identity = %q, want %q", e.Identity, identity.Base("X").Key())
	}
}

func TestResolveDuplicateBaseRedeclaredAsDerived(t *testing.T) {
	t.Parallel()

	// Two derivations over the same operands collide dimensionally
	// even though their names differ.
	cat := &catalog.Catalog{
		Info: catalog.Info{Name: "dupes"},
		Base: []catalog.BaseUnit{{Name: "Cycles"}, {Name: "Duration"}},
		Quotients: []catalog.DerivedUnit{
			{Name: "Frequency", Primary: "Cycles", Secondary: "Duration"},
			{Name: "Frequency2", Primary: "Cycles", Secondary: "Duration"},
		},
	}

	reg, report := Resolve(cat)
	if len(report.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(report.Errors), report.Errors)
	}
	e := report.Errors[0]
	if !errors.Is(&e, ErrDuplicateDimension) {
		t.Fatalf("got %v, want ErrDuplicateDimension", e.Err)
	}

	// First registration stands, second is rejected.
	if _, ok := reg.Identity("Frequency"); !ok {
		t.Error("Frequency should remain registered")
	}
	if _, ok := reg.Identity("Frequency2"); ok {
		t.Error("Frequency2 should have been rejected")
	}
}

func TestResolveUnresolvableCycle(t *testing.T) {
	t.Parallel()

	// A = B * C and B = A / C can never resolve: neither A nor B is
	// reachable from known units.
	cat := &catalog.Catalog{
		Info: catalog.Info{Name: "cyclic"},
		Base: []catalog.BaseUnit{{Name: "C"}},
		Products: []catalog.DerivedUnit{
			{Name: "A", Primary: "B", Secondary: "C"},
		},
		Quotients: []catalog.DerivedUnit{
			{Name: "B", Primary: "A", Secondary: "C"},
		},
	}

	reg, report := Resolve(cat)
	if report.OK() {
		t.Fatal("expected unresolved errors, got clean report")
	}

	unresolved := report.Unresolved()
	if len(unresolved) != 2 || unresolved[0] != "A" || unresolved[1] != "B" {
		t.Fatalf("Unresolved() = %v, want [A B]", unresolved)
	}
	for _, e := range report.Errors {
		if !errors.Is(&e, ErrUnresolved) {
			t.Errorf("got %v, want ErrUnresolved", e.Err)
		}
	}
	if reg.Len() != 1 {
		t.Errorf("registry has %d units, want only base C", reg.Len())
	}
}

func TestResolveMissingReferenceFoldsIntoUnresolved(t *testing.T) {
	t.Parallel()

	// An operand that is declared nowhere leaves the dependent derived
	// unit permanently unready; it falls out of the fixpoint loop as
	// unresolved rather than being special-cased.
	cat := &catalog.Catalog{
		Info: catalog.Info{Name: "dangling"},
		Base: []catalog.BaseUnit{{Name: "Length"}},
		Products: []catalog.DerivedUnit{
			{Name: "Torque", Primary: "Force", Secondary: "Length"},
		},
	}

	_, report := Resolve(cat)
	if got := report.Unresolved(); len(got) != 1 || got[0] != "Torque" {
		t.Errorf("Unresolved() = %v, want [Torque]", got)
	}
}

func TestResolveTransitiveChain(t *testing.T) {
	t.Parallel()

	// A chain of derived units each depending on the previous one,
	// declared in reverse, exercises repeated worklist re-seeding.
	cat := &catalog.Catalog{
		Info: catalog.Info{Name: "chain"},
		Base: []catalog.BaseUnit{{Name: "Length"}},
		Products: []catalog.DerivedUnit{
			{Name: "Quartic", Primary: "Cubic", Secondary: "Length"},
			{Name: "Cubic", Primary: "Square", Secondary: "Length"},
			{Name: "Square", Primary: "Length", Secondary: "Length"},
		},
	}

	reg, report := Resolve(cat)
	if !report.OK() {
		t.Fatalf("unexpected report errors: %v", report.Errors)
	}
	id, _ := reg.Identity("Quartic")
	want := identity.FromRatio([]identity.Factor{{Base: "Length", Exp: 4}}, nil)
	if !id.Equal(want) {
		t.Errorf("Quartic identity = %s, want %s", id, want)
	}
}
