package redox

import (
	"fmt"
	"math"

	"galvani/internal/catalog"
	"galvani/pkg/models"
)

// Resolver assigns anode and cathode for a validated pair and derives the
// global equation. It trusts its input came from a Validator bound to the
// same catalog.
type Resolver struct {
	catalog *catalog.Catalog
}

func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Mode reports which resolution strategy the bound catalog selects.
func (r *Resolver) Mode() models.Mode {
	if r.catalog.HasPotentials() {
		return models.ModePotentialRanked
	}
	return models.ModeRoleOnly
}

// Resolve is pure: equal pairs always produce equal resolutions. The only
// errors are ErrZeroPotentialCell and ErrCatalogCorruption.
func (r *Resolver) Resolve(pair models.SelectedPair) (models.Resolution, error) {
	if r.catalog.HasPotentials() {
		return r.ranked(pair)
	}
	return r.roleOnly(pair)
}

// MustResolve is Resolve but panics when the catalog is corrupt. Selection
// errors are still returned.
func (r *Resolver) MustResolve(pair models.SelectedPair) (models.Resolution, error) {
	res, err := r.Resolve(pair)
	if IsFatal(err) {
		panic(err)
	}
	return res, err
}

func (r *Resolver) roleOnly(pair models.SelectedPair) (models.Resolution, error) {
	donor, acceptor := pair.Reduced(), pair.Oxidized()

	donorProduct, err := r.conjugate(donor)
	if err != nil {
		return models.Resolution{}, err
	}
	acceptorProduct, err := r.conjugate(acceptor)
	if err != nil {
		return models.Resolution{}, err
	}

	return models.Resolution{
		Mode:            models.ModeRoleOnly,
		Donor:           donor,
		Acceptor:        acceptor,
		DonorProduct:    donorProduct,
		AcceptorProduct: acceptorProduct,
		Equation:        models.Equation{donor.Formula, acceptor.Formula, donor.Conjugate, acceptor.Conjugate},
	}, nil
}

// ranked compares the couples by standard potential: the higher couple is
// reduced at the cathode, the lower one oxidized at the anode.
func (r *Resolver) ranked(pair models.SelectedPair) (models.Resolution, error) {
	a, err := r.metal(pair.Reduced())
	if err != nil {
		return models.Resolution{}, err
	}
	b, err := r.metal(pair.Oxidized())
	if err != nil {
		return models.Resolution{}, err
	}
	if !a.HasPotential() || !b.HasPotential() {
		return models.Resolution{}, newError(KindCatalogCorruption,
			fmt.Sprintf("missing potential for %s or %s", a.Formula, b.Formula), nil)
	}

	pa, pb := *a.Potential, *b.Potential
	if pa == pb {
		return models.Resolution{}, newError(KindZeroPotentialCell,
			fmt.Sprintf("%s and %s both have E° = %.2f V; the cell has no polarity", a.Formula, b.Formula, pa), nil)
	}

	cathode, anode := a, b
	if pb > pa {
		cathode, anode = b, a
	}

	donorProduct, err := r.conjugate(anode)
	if err != nil {
		return models.Resolution{}, err
	}
	acceptor, err := r.conjugate(cathode)
	if err != nil {
		return models.Resolution{}, err
	}

	ddp := roundVolts(*cathode.Potential - *anode.Potential)
	return models.Resolution{
		Mode:            models.ModePotentialRanked,
		Donor:           anode,
		Acceptor:        acceptor,
		DonorProduct:    donorProduct,
		AcceptorProduct: cathode,
		Equation:        models.Equation{anode.Formula, acceptor.Formula, anode.Conjugate, cathode.Formula},
		CellPotential:   &ddp,
	}, nil
}

// metal returns the reduced (electrode) form of the couple s belongs to.
func (r *Resolver) metal(s models.Species) (models.Species, error) {
	if s.Role == models.RoleReduced {
		return s, nil
	}
	m, err := r.conjugate(s)
	if err != nil {
		return models.Species{}, err
	}
	if m.Role != models.RoleReduced {
		return models.Species{}, newError(KindCatalogCorruption,
			fmt.Sprintf("conjugate of %s is not a reduced form", s.Formula), nil)
	}
	return m, nil
}

func (r *Resolver) conjugate(s models.Species) (models.Species, error) {
	c, err := r.catalog.Lookup(s.Conjugate)
	if err != nil {
		return models.Species{}, newError(KindCatalogCorruption,
			fmt.Sprintf("conjugate of %q", s.Formula), err)
	}
	return c, nil
}

// roundVolts keeps the two decimals the tables are given in, so 0.34 - -0.76
// reads 1.10 rather than 1.1000000000000001.
func roundVolts(v float64) float64 {
	return math.Round(v*100) / 100
}
