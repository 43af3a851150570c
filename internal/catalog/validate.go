package catalog

import "fmt"

// Validate checks a catalog for structural correctness: required
// fields, unique names across base and derived sets, and operand
// references that name declared units. All findings are collected and
// returned together so authors can fix a catalog in one pass.
//
// Ordering or cyclic dependency problems among derived units are not
// detected here; those surface from the resolver's fixpoint pass.
func Validate(c *Catalog) []ValidationError {
	var errs []ValidationError

	if c.Info.Name == "" {
		errs = append(errs, ValidationError{
			Category:   ValCatMissingField,
			SourceFile: c.SourceFile,
			Field:      "catalog.name",
			Err:        fmt.Errorf("%w: catalog.name", ErrMissingField),
		})
	}

	seen := make(map[string]string) // name → declaring section

	checkName := func(name, section string) {
		if name == "" {
			errs = append(errs, ValidationError{
				Category:   ValCatMissingField,
				SourceFile: c.SourceFile,
				Field:      section + ".name",
				Err:        fmt.Errorf("%w: name", ErrMissingField),
			})
			return
		}
		if prev, ok := seen[name]; ok {
			errs = append(errs, ValidationError{
				Category:   ValCatDuplicateName,
				Unit:       name,
				SourceFile: c.SourceFile,
				Err:        fmt.Errorf("%w: %q already declared under [[%s]]", ErrDuplicateName, name, prev),
			})
			return
		}
		seen[name] = section
	}

	for _, b := range c.Base {
		checkName(b.Name, "base")
	}
	for _, d := range c.Products {
		checkName(d.Name, "product")
	}
	for _, d := range c.Quotients {
		checkName(d.Name, "quotient")
	}

	// Validate operands reference declared names. A unit naming itself
	// can never resolve, so it is rejected eagerly rather than left for
	// the fixpoint pass to report as unresolved.
	names := c.Names()
	for _, d := range c.Derivations() {
		for _, operand := range []struct{ field, name string }{
			{"primary", d.Primary},
			{"secondary", d.Secondary},
		} {
			switch {
			case operand.name == "":
				errs = append(errs, ValidationError{
					Category:   ValCatMissingField,
					Unit:       d.Name,
					SourceFile: c.SourceFile,
					Field:      operand.field,
					Err:        fmt.Errorf("%w: %s", ErrMissingField, operand.field),
				})
			case operand.name == d.Name:
				errs = append(errs, ValidationError{
					Category:   ValCatSelfReference,
					Unit:       d.Name,
					SourceFile: c.SourceFile,
					Field:      operand.field,
					Err:        fmt.Errorf("%w: %q", ErrSelfReference, d.Name),
				})
			case !names[operand.name]:
				errs = append(errs, ValidationError{
					Category:   ValCatUnknownUnit,
					Unit:       d.Name,
					SourceFile: c.SourceFile,
					Field:      operand.field,
					Err:        fmt.Errorf("%w: %q references %q", ErrUnknownUnit, d.Name, operand.name),
				})
			}
		}
	}

	return errs
}
