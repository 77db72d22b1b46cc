package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"galvani/internal/appearance"
	"galvani/internal/redox"
	"galvani/pkg/models"
)

const rule = "=========================================="

// console drives the interactive simulator over any reader/writer pair.
type console struct {
	engine *redox.Engine
	in     *bufio.Scanner
	out    io.Writer
}

func newConsole(engine *redox.Engine, in io.Reader, out io.Writer) *console {
	return &console{engine: engine, in: bufio.NewScanner(in), out: out}
}

// errQuit ends the session without an error exit.
var errQuit = errors.New("quit")

// run loops until input ends or the user types "quit". A corrupt catalog is
// returned as an error; every other failure is shown and re-prompted.
func (c *console) run() error {
	fmt.Fprintf(c.out, "\n--- galvanic cell simulator (%s table, %s) ---\n", c.engine.Catalog.Name(), c.engine.Resolver.Mode())
	defer fmt.Fprintln(c.out, "--- simulation finished ---")

	for {
		res, err := c.round()
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			return err
		}
		c.printResult(res)
	}
}

// round collects one pair. The first selection is kept while the second is
// re-entered after a validation error.
func (c *console) round() (models.Resolution, error) {
	var first models.Species
	for {
		c.printTable()
		raw, err := c.ask("Choose the FIRST species (type the formula, e.g. Zn(s)): ")
		if err != nil {
			return models.Resolution{}, err
		}
		first, err = c.engine.Lookup(raw)
		if err != nil {
			c.printError(fmt.Sprintf("Species '%s' is not valid. Try again.", raw))
			continue
		}
		break
	}

	for {
		c.printTable()
		raw, err := c.ask(fmt.Sprintf("First species: %s. Choose the SECOND species (e.g. Cu2+(aq)): ", first.Formula))
		if err != nil {
			return models.Resolution{}, err
		}
		second, err := c.engine.Lookup(raw)
		if err != nil {
			c.printError(fmt.Sprintf("Species '%s' is not valid. Try again.", raw))
			continue
		}

		pair, err := c.engine.Validator.Validate(first, second)
		if err != nil {
			c.printError(describe(err))
			continue
		}

		res, err := c.engine.Resolver.Resolve(pair)
		if err != nil {
			if redox.IsFatal(err) {
				return models.Resolution{}, err
			}
			c.printError(describe(err))
			continue
		}
		return res, nil
	}
}

func (c *console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	line := strings.TrimSpace(c.in.Text())
	if line == "quit" || line == "exit" {
		return "", errQuit
	}
	return line, nil
}

func (c *console) printTable() {
	fmt.Fprintln(c.out, "\nAvailable species:")
	writeTable(c.out, c.engine)
}

func (c *console) printError(msg string) {
	fmt.Fprintln(c.out, "\n----------------- ERROR -----------------")
	fmt.Fprintln(c.out, msg)
	fmt.Fprintln(c.out, "-----------------------------------------")
}

func (c *console) printResult(res models.Resolution) {
	fmt.Fprintln(c.out, "\n"+rule)
	fmt.Fprintln(c.out, "               CELL RESULT")
	fmt.Fprintln(c.out, rule)
	writeResult(c.out, res)
	fmt.Fprintln(c.out, rule)
}

// writeTable prints the catalog in display order.
func writeTable(w io.Writer, engine *redox.Engine) {
	for s := range engine.Catalog.All() {
		line := fmt.Sprintf(" %2d. %-10s %-8s -> %s", s.Key, s.Formula, s.Role, s.Conjugate)
		if s.HasPotential() {
			line += fmt.Sprintf("  (E° = %+.2f V)", s.PotentialValue())
		}
		fmt.Fprintln(w, line)
	}
}

func writeResult(w io.Writer, res models.Resolution) {
	fmt.Fprintln(w, res.Summary())

	d := appearance.DiagramOf(res)
	fmt.Fprintf(w, "anode (-):   %s | %s   oxidation\n", d.Anode.Species, d.Anode.Ion)
	fmt.Fprintf(w, "cathode (+): %s | %s   reduction\n", d.Cathode.Species, d.Cathode.Ion)
	fmt.Fprintf(w, "electrons flow %s -> %s through the wire; salt bridge ion %s\n", d.ElectronsFrom, d.ElectronsTo, d.CounterIon)
}

// describe phrases an engine error for people.
func describe(err error) string {
	switch redox.KindOf(err) {
	case redox.KindDuplicateSelection:
		return "You cannot choose the same species twice."
	case redox.KindRoleConflict:
		return "You must choose one reduced species and one oxidized species.\n" + err.Error()
	case redox.KindSameElementConflict:
		return "Both species belong to the same element; choose two different metals.\n" + err.Error()
	case redox.KindZeroPotentialCell:
		return "The two couples have the same standard potential, so the cell has no polarity."
	default:
		return err.Error()
	}
}
