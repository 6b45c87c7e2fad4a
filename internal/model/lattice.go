package model

import "fmt"

// Lattice tags.
const (
	LatticeChain       = "Chain"
	LatticeSquare      = "Square"
	LatticeRectangular = "Rectangular"
	LatticeTriangular  = "Triangular"
	LatticeKagome      = "Kagome"
	LatticeHoneycomb   = "Honeycomb"
	LatticeCubic       = "Cubic"
)

// Lattice is one of Chain, Square, Rectangular, Triangular, Kagome,
// Honeycomb or Cubic. The set is closed.
type Lattice interface {
	// Name returns the discriminator tag.
	Name() string
	wire() map[string]any
}

// Chain is a one-dimensional lattice of L sites.
type Chain struct {
	L   int
	PBC bool
}

// Square is an L×L lattice.
type Square struct {
	L   int
	PBC bool
}

// Rectangular is an Lx×Ly lattice.
type Rectangular struct {
	Lx  int
	Ly  int
	PBC bool
}

type Triangular struct{ L int }

type Kagome struct{ L int }

type Honeycomb struct{ L int }

type Cubic struct{ L int }

func (Chain) Name() string       { return LatticeChain }
func (Square) Name() string      { return LatticeSquare }
func (Rectangular) Name() string { return LatticeRectangular }
func (Triangular) Name() string  { return LatticeTriangular }
func (Kagome) Name() string      { return LatticeKagome }
func (Honeycomb) Name() string   { return LatticeHoneycomb }
func (Cubic) Name() string       { return LatticeCubic }

func (l Chain) wire() map[string]any {
	return map[string]any{DiscriminatorField: l.Name(), "L": l.L, "pbc": l.PBC}
}

func (l Square) wire() map[string]any {
	return map[string]any{DiscriminatorField: l.Name(), "L": l.L, "pbc": l.PBC}
}

func (l Rectangular) wire() map[string]any {
	return map[string]any{DiscriminatorField: l.Name(), "Lx": l.Lx, "Ly": l.Ly, "pbc": l.PBC}
}

func (l Triangular) wire() map[string]any {
	return map[string]any{DiscriminatorField: l.Name(), "L": l.L}
}

func (l Kagome) wire() map[string]any {
	return map[string]any{DiscriminatorField: l.Name(), "L": l.L}
}

func (l Honeycomb) wire() map[string]any {
	return map[string]any{DiscriminatorField: l.Name(), "L": l.L}
}

func (l Cubic) wire() map[string]any {
	return map[string]any{DiscriminatorField: l.Name(), "L": l.L}
}

// ParseLattice validates raw as a Lattice. path prefixes every issue.
func ParseLattice(raw any, path string) (Lattice, Errors) {
	var errs Errors
	variant, obj, ok := resolveVariant(raw, path, latticeVariants, &errs)
	if !ok {
		return nil, errs
	}
	values := checkObject(obj, path, variant.Fields, &errs, DiscriminatorField)
	if len(errs) > 0 {
		return nil, errs
	}
	return buildLattice(variant.Name, values), nil
}

func buildLattice(name string, values map[string]any) Lattice {
	switch name {
	case LatticeChain:
		return Chain{L: intValue(values, "L"), PBC: values["pbc"].(bool)}
	case LatticeSquare:
		return Square{L: intValue(values, "L"), PBC: values["pbc"].(bool)}
	case LatticeRectangular:
		return Rectangular{Lx: intValue(values, "Lx"), Ly: intValue(values, "Ly"), PBC: values["pbc"].(bool)}
	case LatticeTriangular:
		return Triangular{L: intValue(values, "L")}
	case LatticeKagome:
		return Kagome{L: intValue(values, "L")}
	case LatticeHoneycomb:
		return Honeycomb{L: intValue(values, "L")}
	case LatticeCubic:
		return Cubic{L: intValue(values, "L")}
	default:
		panic(fmt.Sprintf("model: lattice variant %q has no constructor", name))
	}
}

func intValue(values map[string]any, key string) int {
	return int(values[key].(int64))
}
