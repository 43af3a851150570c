package registry

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for resolution failures.
var (
	// ErrDuplicateDimension indicates two distinct unit names resolve to
	// the same canonical identity.
	ErrDuplicateDimension = errors.New("duplicate dimension")
	// ErrUnresolved indicates a derived unit never became resolvable:
	// an operand is missing from the registry or sits on a dependency
	// cycle. The two cases share a remedy and are reported together.
	ErrUnresolved = errors.New("unresolved derived unit")
)

// ErrorCategory classifies a resolution error for programmatic handling.
type ErrorCategory string

const (
	// CatDuplicateDimension indicates an identity collision between two names.
	CatDuplicateDimension ErrorCategory = "duplicate_dimension"
	// CatUnresolved indicates a derived unit left over after the fixpoint pass.
	CatUnresolved ErrorCategory = "unresolved"
)

// ResolveError records one resolution failure. For duplicate
// dimensions, Unit is the rejected (second-seen) name, Other the name
// that stands, and Identity their shared signature.
type ResolveError struct {
	Category ErrorCategory
	Unit     string
	Other    string
	Identity string
	Err      error
}

// Error returns a human-readable description of the failure.
func (e *ResolveError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying sentinel for use with errors.Is.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Report collects every failure from one resolution pass. Resolution
// never stops at the first problem: unit catalogs are authored by
// hand, and the author should see all of them at once. Generation must
// not proceed unless OK reports true.
type Report struct {
	Errors []ResolveError
}

// OK reports whether resolution completed without any failures.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Unresolved returns the names of all derived units that never
// resolved, sorted alphabetically.
func (r *Report) Unresolved() []string {
	var names []string
	for _, e := range r.Errors {
		if e.Category == CatUnresolved {
			names = append(names, e.Unit)
		}
	}
	sort.Strings(names)
	return names
}

func (r *Report) addDuplicate(rejected, standing, key string) {
	r.Errors = append(r.Errors, ResolveError{
		Category: CatDuplicateDimension,
		Unit:     rejected,
		Other:    standing,
		Identity: key,
		Err: fmt.Errorf("%w: %q and %q both resolve to %s",
			ErrDuplicateDimension, standing, rejected, key),
	})
}

func (r *Report) addUnresolved(name string) {
	r.Errors = append(r.Errors, ResolveError{
		Category: CatUnresolved,
		Unit:     name,
		Err:      fmt.Errorf("%w: %q (operand missing or on a dependency cycle)", ErrUnresolved, name),
	})
}
