package catalog

import "errors"

// Sentinel errors for catalog loading and structural validation.
var (
	// ErrNoCatalog indicates the units.toml file was not found.
	ErrNoCatalog = errors.New("units.toml not found")
	// ErrDuplicateName indicates two or more declarations share a name.
	ErrDuplicateName = errors.New("duplicate unit name")
	// ErrUnknownUnit indicates an operand names a unit that is not declared anywhere.
	ErrUnknownUnit = errors.New("operand references unknown unit")
	// ErrSelfReference indicates a derived unit names itself as an operand.
	ErrSelfReference = errors.New("unit references itself as operand")
	// ErrMissingField indicates a required field (e.g. name, primary) is empty.
	ErrMissingField = errors.New("required field missing")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	// ValCatMissingField indicates a required field is empty.
	ValCatMissingField ValidationCategory = "missing_field"
	// ValCatDuplicateName indicates two or more declarations share a name.
	ValCatDuplicateName ValidationCategory = "duplicate_name"
	// ValCatUnknownUnit indicates an operand references an undeclared unit.
	ValCatUnknownUnit ValidationCategory = "unknown_unit"
	// ValCatSelfReference indicates a derived unit is its own operand.
	ValCatSelfReference ValidationCategory = "self_reference"
)

// ValidationError records a structural problem with source context.
type ValidationError struct {
	Category   ValidationCategory // Machine-readable category for programmatic handling
	Unit       string
	SourceFile string
	Field      string
	Err        error
}

// Error returns a human-readable string including source file and unit context.
func (e *ValidationError) Error() string {
	if e.Unit != "" {
		return e.SourceFile + ": unit " + e.Unit + ": " + e.Err.Error()
	}
	return e.SourceFile + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
