// Package appearance maps element symbols to the colours front ends use when
// drawing a cell: electrode metal and electrolyte solution.
package appearance

import (
	"galvani/pkg/models"
)

type Element struct {
	Symbol   string `json:"symbol"`
	Metal    string `json:"metal_color"`
	Solution string `json:"solution_color"`
}

const (
	defaultMetal    = "#808080"
	defaultSolution = "#E1F5FF"
)

var elements = map[string]Element{
	"Cu": {Symbol: "Cu", Metal: "#B87333", Solution: "#87CEFA"},
	"Zn": {Symbol: "Zn", Metal: "#8C8C96"},
	"Au": {Symbol: "Au", Metal: "#FFD700"},
	"Ag": {Symbol: "Ag", Metal: "#DCDCDC"},
	"Mg": {Symbol: "Mg", Metal: "#C8C8C8"},
	"Fe": {Symbol: "Fe", Metal: "#646464"},
	"Li": {Symbol: "Li", Metal: "#B4B4B4"},
	"Al": {Symbol: "Al", Metal: "#BEBEBE"},
	"Ni": {Symbol: "Ni", Metal: "#969696", Solution: "#90EE90"},
	"Pb": {Symbol: "Pb", Metal: "#64646E"},
}

// Of returns the record for symbol, falling back to grey metal in a pale
// solution for elements without one.
func Of(symbol string) Element {
	e, ok := elements[symbol]
	if !ok {
		e = Element{Symbol: symbol}
	}
	if e.Metal == "" {
		e.Metal = defaultMetal
	}
	if e.Solution == "" {
		e.Solution = defaultSolution
	}
	return e
}

// Electrode is one half-cell of the drawn diagram.
type Electrode struct {
	Element
	Species string `json:"species"` // electrode metal, e.g. "Cu(s)"
	Ion     string `json:"ion"`     // ion in solution, e.g. "Cu2+"
	Pole    string `json:"pole"`    // "+" for the cathode, "-" for the anode
	Process string `json:"process"` // "reduction" or "oxidation"
}

// Diagram carries what a schematic view needs: both half-cells, the salt
// bridge counter-ion and the electron flow through the external wire.
type Diagram struct {
	Cathode       Electrode `json:"cathode"`
	Anode         Electrode `json:"anode"`
	CounterIon    string    `json:"counter_ion"`
	ElectronsFrom string    `json:"electrons_from"`
	ElectronsTo   string    `json:"electrons_to"`
	Potential     string    `json:"potential,omitempty"`
}

const counterIon = "SO4 2-"

// DiagramOf lays out the cell for a resolution. The anode is the donor's
// metal and the cathode the acceptor's reduced product.
func DiagramOf(res models.Resolution) Diagram {
	anodeMetal, anodeIon := res.Donor, res.DonorProduct
	cathodeMetal, cathodeIon := res.AcceptorProduct, res.Acceptor

	return Diagram{
		Cathode: Electrode{
			Element: Of(cathodeMetal.ElementSymbol()),
			Species: cathodeMetal.Formula,
			Ion:     models.StripState(cathodeIon.Formula),
			Pole:    "+",
			Process: "reduction",
		},
		Anode: Electrode{
			Element: Of(anodeMetal.ElementSymbol()),
			Species: anodeMetal.Formula,
			Ion:     models.StripState(anodeIon.Formula),
			Pole:    "-",
			Process: "oxidation",
		},
		CounterIon:    counterIon,
		ElectronsFrom: anodeMetal.ElementSymbol(),
		ElectronsTo:   cathodeMetal.ElementSymbol(),
		Potential:     res.FormatPotential(),
	}
}
