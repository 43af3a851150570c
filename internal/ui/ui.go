// Package ui provides stderr-based terminal output for unitforge:
// diagnostic reports, registry tables, and progress lines.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/forgelabs/unitforge/internal/catalog"
	"github.com/forgelabs/unitforge/internal/registry"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

// Printer writes human-facing output. Color is disabled either by
// configuration or when stderr is not a terminal-ish destination the
// caller trusts.
type Printer struct {
	Out   io.Writer
	Color bool
}

// New returns a Printer targeting stderr.
func New(color bool) *Printer {
	return &Printer{Out: os.Stderr, Color: color}
}

func (p *Printer) paint(code, s string) string {
	if !p.Color {
		return s
	}
	return code + s + reset
}

// ValidationErrors prints structural catalog problems, one per line.
func (p *Printer) ValidationErrors(errs []catalog.ValidationError) {
	for _, e := range errs {
		fmt.Fprintf(p.Out, "%s %s\n", p.paint(red+bold, "✗"), e.Error())
	}
}

// ResolveErrors prints resolution failures, one per line.
func (p *Printer) ResolveErrors(errs []registry.ResolveError) {
	for _, e := range errs {
		fmt.Fprintf(p.Out, "%s %s\n", p.paint(red+bold, "✗"), e.Error())
	}
}

// RegistryTable prints every registered unit and its canonical
// identity, sorted by name and aligned in two columns.
func (p *Printer) RegistryTable(reg *registry.Registry) {
	names := reg.Names()
	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, name := range names {
		id, _ := reg.Identity(name)
		fmt.Fprintf(p.Out, "  %s%s%s\n",
			p.paint(bold, fmt.Sprintf("%-*s", width, name)),
			p.paint(dim, "  =  "),
			p.paint(cyan, id.Key()))
	}
}

// Summary prints a one-line success summary after resolution.
func (p *Printer) Summary(catalogName string, units, facts int) {
	fmt.Fprintf(p.Out, "%s catalog %s: %d units, %d conversion facts\n",
		p.paint(green+bold, "✓"), p.paint(bold, catalogName), units, facts)
}

// Failure prints a one-line failure summary with the error count.
func (p *Printer) Failure(catalogName string, count int) {
	fmt.Fprintf(p.Out, "%s catalog %s: %d problem(s) found\n",
		p.paint(red+bold, "✗"), p.paint(bold, catalogName), count)
}

// Watching prints the watch-mode banner line.
func (p *Printer) Watching(path string) {
	fmt.Fprintf(p.Out, "%s watching %s for changes\n", p.paint(yellow+bold, "◉"), path)
}
