package registry

import (
	"sort"

	"github.com/forgelabs/unitforge/internal/catalog"
	"github.com/forgelabs/unitforge/internal/identity"
)

// depNode is the transient per-derivation record used during one
// resolution pass. Reverse-dependency edges are stored as index lists
// into the node arena rather than pointers, so the only mutable state
// is the arena itself.
type depNode struct {
	catalog.Derivation

	// dependents are indices of nodes that use this node's name as an
	// operand and therefore need it resolved first.
	dependents []int

	queued bool // already enqueued on the worklist
	done   bool // processed (resolved or rejected as a duplicate)
}

// Resolve builds the complete Registry from a catalog's declarations.
// Base units register directly; derived units resolve via a fixpoint
// worklist that processes a node as soon as both of its operands have
// registered identities, regardless of declaration order.
//
// All failures are collected into the returned Report rather than
// aborting at the first one. The Registry is only trustworthy when the
// Report is clean: a duplicate-dimension rejection leaves the first
// registration standing, and anything depending on a rejected or
// missing unit is reported as unresolved.
func Resolve(cat *catalog.Catalog) (*Registry, *Report) {
	derivations := cat.Derivations()
	reg := newRegistry(len(cat.Base) + len(derivations))
	report := &Report{}

	for _, b := range cat.Base {
		register(reg, report, b.Name, identity.Base(b.Name))
	}

	// Build the node arena and reverse-dependency edges. byName maps a
	// derived unit's name to its arena index.
	nodes := make([]depNode, len(derivations))
	byName := make(map[string]int, len(derivations))
	for i, d := range derivations {
		nodes[i] = depNode{Derivation: d}
		byName[d.Name] = i
	}
	for i, n := range nodes {
		for _, operand := range []string{n.Primary, n.Secondary} {
			if j, ok := byName[operand]; ok && j != i {
				nodes[j].dependents = append(nodes[j].dependents, i)
			}
		}
	}

	// Seed the worklist with nodes whose operands are already
	// registered (both base units). Declaration order is preserved;
	// the fixpoint result is order-independent either way, this just
	// keeps diagnostics stable run to run.
	var queue []int
	for i := range nodes {
		if ready(&nodes[i], reg) {
			nodes[i].queued = true
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		n := &nodes[i]
		n.done = true

		pid, _ := reg.Identity(n.Primary)
		sid, _ := reg.Identity(n.Secondary)
		var id identity.Identity
		if n.Op == catalog.OpMul {
			id = identity.Mul(pid, sid)
		} else {
			id = identity.Div(pid, sid)
		}

		if !register(reg, report, n.Name, id) {
			// Rejected duplicate: the name never registers, so
			// dependents stay unready and fall out as unresolved.
			continue
		}

		for _, j := range n.dependents {
			d := &nodes[j]
			if !d.queued && !d.done && ready(d, reg) {
				d.queued = true
				queue = append(queue, j)
			}
		}
	}

	// Whatever the fixpoint left behind is unresolvable: an operand was
	// never declared, was rejected, or sits on a cycle. Reported
	// together, sorted, so the author sees every stuck unit at once.
	var leftover []string
	for i := range nodes {
		if !nodes[i].done {
			leftover = append(leftover, nodes[i].Name)
		}
	}
	sort.Strings(leftover)
	for _, name := range leftover {
		report.addUnresolved(name)
	}

	return reg, report
}

// ready reports whether both of a node's operands have registered
// identities.
func ready(n *depNode, reg *Registry) bool {
	_, p := reg.Identity(n.Primary)
	_, s := reg.Identity(n.Secondary)
	return p && s
}

// register adds a (name, identity) pair after checking the inverse map
// for a dimensional collision. On collision the pair is rejected, the
// earlier registration stands, and both names are reported.
func register(reg *Registry, report *Report, name string, id identity.Identity) bool {
	if standing, ok := reg.NameFor(id); ok {
		report.addDuplicate(name, standing, id.Key())
		return false
	}
	reg.add(name, id)
	return true
}
