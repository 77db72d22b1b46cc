package catalog

import (
	"embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"galvani/pkg/models"
)

const (
	NameDaniell  = "daniell"
	NameExtended = "extended"
)

//go:embed data/*.yaml
var tableFS embed.FS

var (
	daniellOnce  sync.Once
	daniellTable *Catalog

	extendedOnce  sync.Once
	extendedTable *Catalog
)

// Daniell is the zinc/copper table without potentials (role-only resolution).
func Daniell() *Catalog {
	daniellOnce.Do(func() { daniellTable = mustLoad("data/daniell.yaml") })
	return daniellTable
}

// Extended is the twenty-species table, lithium to gold, with standard
// reduction potentials (potential-ranked resolution).
func Extended() *Catalog {
	extendedOnce.Do(func() { extendedTable = mustLoad("data/extended.yaml") })
	return extendedTable
}

// ByName returns one of the built-in tables.
func ByName(name string) (*Catalog, error) {
	switch name {
	case NameDaniell:
		return Daniell(), nil
	case NameExtended, "":
		return Extended(), nil
	default:
		return nil, fmt.Errorf("unknown catalog %q (want one of %v)", name, Names())
	}
}

func Names() []string {
	return []string{NameDaniell, NameExtended}
}

type tableFile struct {
	Name    string           `yaml:"name"`
	Species []models.Species `yaml:"species"`
}

// Parse reads a table in the embedded YAML layout. fallbackName is used when
// the document carries no name.
func Parse(fallbackName string, r io.Reader) (*Catalog, error) {
	var tf tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil {
		return nil, fmt.Errorf("decode species table: %w", err)
	}
	if tf.Name == "" {
		tf.Name = fallbackName
	}
	return New(tf.Name, tf.Species...)
}

func mustLoad(path string) *Catalog {
	f, err := tableFS.Open(path)
	if err != nil {
		panic(fmt.Sprintf("open embedded table %s: %v", path, err))
	}
	defer f.Close()

	c, err := Parse(path, f)
	if err != nil {
		panic(fmt.Sprintf("load embedded table %s: %v", path, err))
	}
	return c
}
