package cmd

import (
	"time"

	"github.com/forgelabs/unitforge/internal/catalog"
	"github.com/forgelabs/unitforge/internal/conversion"
	"github.com/forgelabs/unitforge/internal/registry"
	"github.com/forgelabs/unitforge/internal/telemetry"
)

// pipelineResult bundles everything one resolution pass produces.
type pipelineResult struct {
	Catalog    *catalog.Catalog
	Registry   *registry.Registry
	Structural []catalog.ValidationError
	Report     *registry.Report
	Facts      []conversion.Fact
}

// ok reports whether the catalog resolved cleanly end to end.
func (r *pipelineResult) ok() bool {
	return len(r.Structural) == 0 && r.Report.OK()
}

// problemCount returns the total number of findings across both the
// structural pass and the resolution pass.
func (r *pipelineResult) problemCount() int {
	return len(r.Structural) + len(r.Report.Errors)
}

// runPipeline loads, validates, resolves, and enumerates a catalog.
// Structural and resolution findings are collected, never fatal: the
// caller decides how to present them. Only I/O and syntax failures
// return an error. Facts are enumerated only from a clean registry,
// since a registry with collisions or unresolved units must not feed
// generation.
func runPipeline(path string, em *telemetry.Emitter) (*pipelineResult, error) {
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}

	res := &pipelineResult{Catalog: cat}
	res.Structural = catalog.Validate(cat)

	_ = em.Emit(telemetry.Event{
		Timestamp: time.Now(),
		Kind:      telemetry.KindResolveStart,
		Catalog:   cat.Info.Name,
	})

	res.Registry, res.Report = registry.Resolve(cat)

	for _, name := range res.Registry.Names() {
		id, _ := res.Registry.Identity(name)
		_ = em.Emit(telemetry.Event{
			Timestamp: time.Now(),
			Kind:      telemetry.KindUnitRegistered,
			Catalog:   cat.Info.Name,
			Unit:      name,
			Data:      map[string]string{"identity": id.Key()},
		})
	}
	for _, e := range res.Report.Errors {
		kind := telemetry.KindUnresolved
		if e.Category == registry.CatDuplicateDimension {
			kind = telemetry.KindUnitConflict
		}
		_ = em.Emit(telemetry.Event{
			Timestamp: time.Now(),
			Kind:      kind,
			Catalog:   cat.Info.Name,
			Unit:      e.Unit,
			Data:      map[string]string{"error": e.Error()},
		})
	}

	_ = em.Emit(telemetry.Event{
		Timestamp: time.Now(),
		Kind:      telemetry.KindResolveDone,
		Catalog:   cat.Info.Name,
		Data:      map[string]int{"units": res.Registry.Len(), "problems": res.problemCount()},
	})

	if res.ok() {
		res.Facts = conversion.Enumerate(res.Registry)
		_ = em.Emit(telemetry.Event{
			Timestamp: time.Now(),
			Kind:      telemetry.KindFactsDone,
			Catalog:   cat.Info.Name,
			Data:      map[string]int{"facts": len(res.Facts)},
		})
	}

	return res, nil
}
