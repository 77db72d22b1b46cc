package models

import (
	"fmt"
	"strings"
)

// SelectedPair holds two validated selections with their roles resolved.
// Values are built once by the pair validator and only read afterwards.
type SelectedPair struct {
	first    Species
	second   Species
	reduced  Species
	oxidized Species
}

// NewSelectedPair orders first and second by role. It assumes the two
// species have complementary roles; callers outside the validator should not
// build pairs by hand.
func NewSelectedPair(first, second Species) SelectedPair {
	p := SelectedPair{first: first, second: second, reduced: first, oxidized: second}
	if first.Role == RoleOxidized {
		p.reduced, p.oxidized = second, first
	}
	return p
}

func (p SelectedPair) First() Species    { return p.first }
func (p SelectedPair) Second() Species   { return p.second }
func (p SelectedPair) Reduced() Species  { return p.reduced }
func (p SelectedPair) Oxidized() Species { return p.oxidized }

// Mode names how a resolution assigned anode and cathode.
type Mode string

const (
	ModeRoleOnly        Mode = "role-only"
	ModePotentialRanked Mode = "potential-ranked"
)

// Equation is the global redox equation as
// donor, acceptor, donor product, acceptor product.
type Equation [4]string

func (e Equation) Reactants() []string { return []string{e[0], e[1]} }
func (e Equation) Products() []string  { return []string{e[2], e[3]} }

func (e Equation) String() string {
	return e[0] + " + " + e[1] + " -> " + e[2] + " + " + e[3]
}

// Resolution is the outcome of resolving one SelectedPair.
type Resolution struct {
	Mode            Mode     `json:"mode"`
	Donor           Species  `json:"donor"`            // oxidized at the anode
	Acceptor        Species  `json:"acceptor"`         // reduced at the cathode
	DonorProduct    Species  `json:"donor_product"`    // conjugate of Donor
	AcceptorProduct Species  `json:"acceptor_product"` // conjugate of Acceptor
	Equation        Equation `json:"equation"`
	CellPotential   *float64 `json:"cell_potential,omitempty"`
}

// Anode is the element symbol of the electrode that is oxidized.
func (r Resolution) Anode() string { return r.Donor.ElementSymbol() }

// Cathode is the element symbol of the electrode where reduction happens.
func (r Resolution) Cathode() string { return r.Acceptor.ElementSymbol() }

// FormatPotential renders the cell potential as "1.10 V", or "" in role-only mode.
func (r Resolution) FormatPotential() string {
	if r.CellPotential == nil {
		return ""
	}
	return fmt.Sprintf("%.2f V", *r.CellPotential)
}

// Summary is the multi-line text the console and logs print.
func (r Resolution) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "oxidized (reducing agent): %s\n", r.Donor.Formula)
	fmt.Fprintf(&b, "reduced (oxidizing agent): %s\n", r.Acceptor.Formula)
	fmt.Fprintf(&b, "global equation: %s", r.Equation)
	if p := r.FormatPotential(); p != "" {
		fmt.Fprintf(&b, "\ncell potential: %s", p)
	}
	return b.String()
}
