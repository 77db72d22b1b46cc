// Package catalog holds the immutable reference tables of chemical species.
package catalog

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"galvani/pkg/models"
)

var (
	// ErrNotFound is returned by Lookup when no species has the exact formula.
	ErrNotFound = errors.New("species not found")
	// ErrInconsistent marks a table that breaks the conjugate-pair invariants.
	ErrInconsistent = errors.New("inconsistent species table")
)

// Catalog is a read-only species table. It is never mutated after New
// returns, so one value can be shared by any number of goroutines.
type Catalog struct {
	name       string
	ordered    []models.Species
	byFormula  map[string]int
	potentials bool
}

// New builds a catalog from species and checks every pair invariant.
// Species with a zero Key are numbered by their position in the argument list.
func New(name string, species ...models.Species) (*Catalog, error) {
	if len(species) == 0 {
		return nil, fmt.Errorf("%w: %s: no species", ErrInconsistent, name)
	}

	c := &Catalog{
		name:      name,
		ordered:   make([]models.Species, 0, len(species)),
		byFormula: make(map[string]int, len(species)),
	}

	keys := make(map[int]string, len(species))
	for i, s := range species {
		if s.Formula == "" {
			return nil, inconsistent(name, "entry %d has no formula", i+1)
		}
		if !s.Role.Valid() {
			return nil, inconsistent(name, "%s has invalid role %q", s.Formula, s.Role)
		}
		if s.Key == 0 {
			s.Key = i + 1
		}
		if other, dup := keys[s.Key]; dup {
			return nil, inconsistent(name, "key %d used by %s and %s", s.Key, other, s.Formula)
		}
		keys[s.Key] = s.Formula
		if _, dup := c.byFormula[s.Formula]; dup {
			return nil, inconsistent(name, "duplicate formula %s", s.Formula)
		}
		if s.Potential != nil {
			v := *s.Potential
			s.Potential = &v
		}
		c.byFormula[s.Formula] = len(c.ordered)
		c.ordered = append(c.ordered, s)
	}

	if err := c.check(); err != nil {
		return nil, err
	}

	slices.SortFunc(c.ordered, func(a, b models.Species) int { return a.Key - b.Key })
	for i, s := range c.ordered {
		c.byFormula[s.Formula] = i
	}
	c.potentials = c.ordered[0].HasPotential()
	return c, nil
}

// MustNew is New for package-level tables; it panics on a bad table.
func MustNew(name string, species ...models.Species) *Catalog {
	c, err := New(name, species...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) check() error {
	withPotential := 0
	symbols := make(map[string]string, len(c.ordered))

	for _, s := range c.ordered {
		conj, ok := c.get(s.Conjugate)
		if !ok {
			return inconsistent(c.name, "%s: conjugate %q missing", s.Formula, s.Conjugate)
		}
		if conj.Conjugate != s.Formula {
			return inconsistent(c.name, "%s -> %s is not symmetric (%s -> %s)", s.Formula, conj.Formula, conj.Formula, conj.Conjugate)
		}
		if conj.Role == s.Role {
			return inconsistent(c.name, "%s and %s share role %s", s.Formula, conj.Formula, s.Role)
		}
		if s.HasPotential() != conj.HasPotential() ||
			(s.HasPotential() && *s.Potential != *conj.Potential) {
			return inconsistent(c.name, "%s and %s disagree on potential", s.Formula, conj.Formula)
		}
		if s.HasPotential() {
			withPotential++
		}

		sym := s.ElementSymbol()
		if other, seen := symbols[sym]; seen && other != s.Conjugate {
			return inconsistent(c.name, "%s and %s share element %s but are not conjugates", other, s.Formula, sym)
		}
		symbols[sym] = s.Formula
	}

	if withPotential != 0 && withPotential != len(c.ordered) {
		return inconsistent(c.name, "potentials on %d of %d species", withPotential, len(c.ordered))
	}
	return nil
}

func (c *Catalog) get(formula string) (models.Species, bool) {
	i, ok := c.byFormula[formula]
	if !ok {
		return models.Species{}, false
	}
	return c.ordered[i], true
}

// Lookup finds a species by exact, case-sensitive formula.
func (c *Catalog) Lookup(formula string) (models.Species, error) {
	s, ok := c.get(formula)
	if !ok {
		return models.Species{}, fmt.Errorf("%w: %q", ErrNotFound, formula)
	}
	return clone(s), nil
}

// Contains reports whether the table holds exactly this species.
func (c *Catalog) Contains(s models.Species) bool {
	got, ok := c.get(s.Formula)
	return ok && got.Role == s.Role && got.Conjugate == s.Conjugate
}

// All yields every species in display order (ascending Key). The sequence
// can be ranged over any number of times.
func (c *Catalog) All() iter.Seq[models.Species] {
	return func(yield func(models.Species) bool) {
		for _, s := range c.ordered {
			if !yield(clone(s)) {
				return
			}
		}
	}
}

// List returns a copy of the table in display order.
func (c *Catalog) List() []models.Species {
	return slices.Collect(c.All())
}

func (c *Catalog) Name() string { return c.name }

func (c *Catalog) Len() int { return len(c.ordered) }

// HasPotentials reports whether the table carries standard potentials,
// which switches resolution to potential ranking.
func (c *Catalog) HasPotentials() bool { return c.potentials }

// clone detaches the potential pointer so callers cannot write through it.
func clone(s models.Species) models.Species {
	if s.Potential != nil {
		v := *s.Potential
		s.Potential = &v
	}
	return s
}

func inconsistent(name, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInconsistent, name, fmt.Sprintf(format, args...))
}
