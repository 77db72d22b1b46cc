package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Role tells which half of a conjugate pair a species is.
type Role string

const (
	// RoleReduced species can lose electrons (they act as reducing agents).
	RoleReduced Role = "reduced"
	// RoleOxidized species can gain electrons (they act as oxidizing agents).
	RoleOxidized Role = "oxidized"
)

func (r Role) Valid() bool {
	return r == RoleReduced || r == RoleOxidized
}

// Opposite returns the role of the conjugate form.
func (r Role) Opposite() Role {
	if r == RoleReduced {
		return RoleOxidized
	}
	return RoleReduced
}

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reduced":
		return RoleReduced, nil
	case "oxidized":
		return RoleOxidized, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Species is one chemical entity in one physical/ionic state.
type Species struct {
	Key       int      `json:"key" yaml:"key"`
	Formula   string   `json:"formula" yaml:"formula"`
	Role      Role     `json:"role" yaml:"role"`
	Conjugate string   `json:"conjugate" yaml:"conjugate"`
	Potential *float64 `json:"potential,omitempty" yaml:"potential,omitempty"` // volts, shared by both forms of the couple
}

func (s Species) ElementSymbol() string {
	return ElementSymbol(s.Formula)
}

func (s Species) HasPotential() bool {
	return s.Potential != nil
}

// PotentialValue returns the standard potential, or 0 when the species has none.
func (s Species) PotentialValue() float64 {
	if s.Potential == nil {
		return 0
	}
	return *s.Potential
}

var (
	stateSuffix  = regexp.MustCompile(`\((s|l|g|aq)\)$`)
	chargeSuffix = regexp.MustCompile(`\d*[+-]$`)
)

// StripState drops the trailing physical state annotation.
//
//	"Zn2+(aq)" -> "Zn2+"
//	"Cu(s)"    -> "Cu"
func StripState(formula string) string {
	return stateSuffix.ReplaceAllString(formula, "")
}

// ElementSymbol derives the bare element symbol from a formula written as
// Symbol[charge][(state)], where charge is an optional count followed by a
// sign and state is one of s, l, g, aq.
//
//	"Zn(s)"    -> "Zn"
//	"Ag+(aq)"  -> "Ag"
//	"Al3+(aq)" -> "Al"
func ElementSymbol(formula string) string {
	return chargeSuffix.ReplaceAllString(StripState(formula), "")
}
