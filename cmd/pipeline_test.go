package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/forgelabs/unitforge/internal/catalog"
	"github.com/forgelabs/unitforge/internal/registry"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "units.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	return path
}

func TestRunPipelineCleanCatalog(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, `
[catalog]
name = "kinematics"

[[base]]
name = "Length"

[[base]]
name = "Duration"

[[quotient]]
name = "Velocity"
primary = "Length"
secondary = "Duration"

[[quotient]]
name = "Acceleration"
primary = "Velocity"
secondary = "Duration"
`)

	res, err := runPipeline(path, nil)
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if !res.ok() {
		t.Fatalf("expected clean result, got %d structural, %d resolve errors",
			len(res.Structural), len(res.Report.Errors))
	}
	if res.Registry.Len() != 4 {
		t.Errorf("registered %d units, want 4", res.Registry.Len())
	}
	if len(res.Facts) == 0 {
		t.Error("expected conversion facts for a clean catalog")
	}
}

func TestRunPipelineCollectsAllProblems(t *testing.T) {
	t.Parallel()

	// One unknown operand (structural) plus one dimensional duplicate:
	// both must appear in a single pass.
	path := writeCatalog(t, `
[catalog]
name = "broken"

[[base]]
name = "Length"

[[base]]
name = "Duration"

[[quotient]]
name = "Velocity"
primary = "Length"
secondary = "Duration"

[[quotient]]
name = "Speed"
primary = "Length"
secondary = "Duration"

[[product]]
name = "Torque"
primary = "Force"
secondary = "Length"
`)

	res, err := runPipeline(path, nil)
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if res.ok() {
		t.Fatal("expected problems, got clean result")
	}

	if len(res.Structural) != 1 || !errors.Is(&res.Structural[0], catalog.ErrUnknownUnit) {
		t.Errorf("structural errors = %v, want one ErrUnknownUnit", res.Structural)
	}

	var dup, unresolved int
	for _, e := range res.Report.Errors {
		switch e.Category {
		case registry.CatDuplicateDimension:
			dup++
		case registry.CatUnresolved:
			unresolved++
		}
	}
	if dup != 1 {
		t.Errorf("got %d duplicate-dimension errors, want 1", dup)
	}
	if unresolved != 1 {
		t.Errorf("got %d unresolved errors, want 1 (Torque)", unresolved)
	}

	// No facts from a dirty registry.
	if res.Facts != nil {
		t.Errorf("expected no facts, got %d", len(res.Facts))
	}
}

func TestRunPipelineMissingCatalog(t *testing.T) {
	t.Parallel()

	_, err := runPipeline(filepath.Join(t.TempDir(), "units.toml"), nil)
	if !errors.Is(err, catalog.ErrNoCatalog) {
		t.Errorf("got %v, want ErrNoCatalog", err)
	}
}
