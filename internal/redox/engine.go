// Package redox validates species pairings and resolves them into galvanic
// cells: which species is oxidized, which is reduced, the global equation
// and, when potentials are known, the cell potential.
package redox

import (
	"galvani/internal/catalog"
	"galvani/pkg/models"
)

// Engine bundles lookup, validation and resolution over one catalog for
// front ends that take raw formulas.
type Engine struct {
	Catalog   *catalog.Catalog
	Validator *Validator
	Resolver  *Resolver
}

func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{
		Catalog:   c,
		Validator: NewValidator(c),
		Resolver:  NewResolver(c),
	}
}

// Lookup is Catalog.Lookup with the failure reported as ErrNotFound.
func (e *Engine) Lookup(formula string) (models.Species, error) {
	s, err := e.Catalog.Lookup(formula)
	if err != nil {
		return models.Species{}, newError(KindNotFound, "invalid species", err)
	}
	return s, nil
}

// Simulate runs lookup, validation and resolution for two raw formulas.
func (e *Engine) Simulate(first, second string) (models.Resolution, error) {
	a, err := e.Lookup(first)
	if err != nil {
		return models.Resolution{}, err
	}
	b, err := e.Lookup(second)
	if err != nil {
		return models.Resolution{}, err
	}
	pair, err := e.Validator.Validate(a, b)
	if err != nil {
		return models.Resolution{}, err
	}
	return e.Resolver.Resolve(pair)
}
