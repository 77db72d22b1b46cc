package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementSymbol(t *testing.T) {
	cases := map[string]string{
		// elemental forms, no charge
		"Zn(s)": "Zn",
		"Cu(s)": "Cu",
		"Li(s)": "Li",
		"Au(s)": "Au",
		// single charge without a count
		"Li+(aq)": "Li",
		"Ag+(aq)": "Ag",
		// multi charge
		"Zn2+(aq)": "Zn",
		"Cu2+(aq)": "Cu",
		"Al3+(aq)": "Al",
		"Au3+(aq)": "Au",
		// no state annotation
		"Fe2+": "Fe",
		"Ni":   "Ni",
		"Cl-":  "Cl",
	}
	for formula, want := range cases {
		t.Run(formula, func(t *testing.T) {
			assert.Equal(t, want, ElementSymbol(formula))
		})
	}
}

func TestStripState(t *testing.T) {
	assert.Equal(t, "Zn2+", StripState("Zn2+(aq)"))
	assert.Equal(t, "Ag+", StripState("Ag+(aq)"))
	assert.Equal(t, "Cu", StripState("Cu(s)"))
	assert.Equal(t, "Hg", StripState("Hg(l)"))
	assert.Equal(t, "Mg2+", StripState("Mg2+"))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Reduced ")
	require.NoError(t, err)
	assert.Equal(t, RoleReduced, r)
	assert.Equal(t, RoleOxidized, r.Opposite())

	_, err = ParseRole("neutral")
	assert.Error(t, err)
	assert.False(t, Role("neutral").Valid())
}

func TestNewSelectedPairOrdersByRole(t *testing.T) {
	zn := Species{Formula: "Zn(s)", Role: RoleReduced, Conjugate: "Zn2+(aq)"}
	cu := Species{Formula: "Cu2+(aq)", Role: RoleOxidized, Conjugate: "Cu(s)"}

	p := NewSelectedPair(cu, zn)
	assert.Equal(t, "Cu2+(aq)", p.First().Formula)
	assert.Equal(t, "Zn(s)", p.Second().Formula)
	assert.Equal(t, "Zn(s)", p.Reduced().Formula)
	assert.Equal(t, "Cu2+(aq)", p.Oxidized().Formula)
}

func TestResolutionFormatting(t *testing.T) {
	ddp := 1.1
	r := Resolution{
		Mode:     ModePotentialRanked,
		Donor:    Species{Formula: "Zn(s)"},
		Acceptor: Species{Formula: "Cu2+(aq)"},
		Equation: Equation{"Zn(s)", "Cu2+(aq)", "Zn2+(aq)", "Cu(s)"},
	}
	assert.Equal(t, "", r.FormatPotential())

	r.CellPotential = &ddp
	assert.Equal(t, "1.10 V", r.FormatPotential())
	assert.Equal(t, "Zn(s) + Cu2+(aq) -> Zn2+(aq) + Cu(s)", r.Equation.String())
	assert.Equal(t, "Zn", r.Anode())
	assert.Equal(t, "Cu", r.Cathode())
	assert.Contains(t, r.Summary(), "cell potential: 1.10 V")
	assert.Equal(t, []string{"Zn(s)", "Cu2+(aq)"}, r.Equation.Reactants())
	assert.Equal(t, []string{"Zn2+(aq)", "Cu(s)"}, r.Equation.Products())
}
