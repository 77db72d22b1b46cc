package redox

import (
	"fmt"

	"galvani/internal/catalog"
	"galvani/pkg/models"
)

// Validator rejects species pairings that cannot form a galvanic cell.
type Validator struct {
	catalog     *catalog.Catalog
	sameElement bool
}

// NewValidator binds a validator to c. Same-element pairs (a metal with its
// own ion) are rejected only when c carries potentials; the role-only table
// keeps the console simulator's behaviour of accepting them.
func NewValidator(c *catalog.Catalog) *Validator {
	return &Validator{catalog: c, sameElement: c.HasPotentials()}
}

// Validate checks a and b in a fixed order: existence, distinctness, same
// element, role complementarity. The first failing check is reported. The
// outcome does not depend on argument order.
func (v *Validator) Validate(a, b models.Species) (models.SelectedPair, error) {
	for _, s := range []models.Species{a, b} {
		if s.Formula == "" || !v.catalog.Contains(s) {
			return models.SelectedPair{}, newError(KindUnknownSpecies,
				fmt.Sprintf("species %q is not in the %s catalog", s.Formula, v.catalog.Name()), nil)
		}
	}

	if a.Formula == b.Formula {
		return models.SelectedPair{}, newError(KindDuplicateSelection,
			fmt.Sprintf("%s was selected twice", a.Formula), nil)
	}

	if v.sameElement && a.Conjugate == b.Formula {
		return models.SelectedPair{}, newError(KindSameElementConflict,
			fmt.Sprintf("%s and %s are the same element (%s); choose different metals",
				a.Formula, b.Formula, a.ElementSymbol()), nil)
	}

	if a.Role == b.Role {
		return models.SelectedPair{}, newError(KindRoleConflict,
			fmt.Sprintf("%s and %s are both %s; choose one reduced and one oxidized species",
				a.Formula, b.Formula, a.Role), nil)
	}

	return models.NewSelectedPair(a, b), nil
}
