package model

import "fmt"

// Problem tags.
const (
	ProblemHeisenberg = "Heisenberg"
	ProblemJ1J2       = "J1-J2"
	ProblemHubbard    = "Hubbard"
	ProblemIsing      = "Ising"
)

// Problem is a Hamiltonian defined on exactly one Lattice: Heisenberg, J1J2,
// Hubbard or Ising.
type Problem interface {
	// Name returns the discriminator tag.
	Name() string
	Lattice() Lattice
	wire() map[string]any
}

type problemBase struct {
	lattice Lattice
}

// Lattice returns the lattice the problem is defined on.
func (b problemBase) Lattice() Lattice { return b.lattice }

func (b problemBase) wire(name string) map[string]any {
	return map[string]any{DiscriminatorField: name, "Lattice": b.lattice.wire()}
}

// Heisenberg is the nearest-neighbour Heisenberg model with J = 1.
type Heisenberg struct {
	problemBase
}

// J1J2 adds a next-nearest-neighbour coupling J2 (J1 = 1).
type J1J2 struct {
	problemBase
	J2 float64
}

// Hubbard is the Hubbard model with on-site interaction U (t = 1).
type Hubbard struct {
	problemBase
	U float64
}

// Ising is the Ising model in a field h.
type Ising struct {
	problemBase
	H float64
}

func NewHeisenberg(l Lattice) Heisenberg { return Heisenberg{problemBase{l}} }

func NewJ1J2(l Lattice, j2 float64) J1J2 { return J1J2{problemBase{l}, j2} }

func NewHubbard(l Lattice, u float64) Hubbard { return Hubbard{problemBase{l}, u} }

func NewIsing(l Lattice, h float64) Ising { return Ising{problemBase{l}, h} }

func (Heisenberg) Name() string { return ProblemHeisenberg }
func (J1J2) Name() string       { return ProblemJ1J2 }
func (Hubbard) Name() string    { return ProblemHubbard }
func (Ising) Name() string      { return ProblemIsing }

func (p Heisenberg) wire() map[string]any { return p.problemBase.wire(p.Name()) }

func (p J1J2) wire() map[string]any {
	w := p.problemBase.wire(p.Name())
	w["J2"] = p.J2
	return w
}

func (p Hubbard) wire() map[string]any {
	w := p.problemBase.wire(p.Name())
	w["U"] = p.U
	return w
}

func (p Ising) wire() map[string]any {
	w := p.problemBase.wire(p.Name())
	w["h"] = p.H
	return w
}

// ParseProblem validates raw as a Problem. Issues in the embedded lattice are
// reported under "<path>.Lattice".
func ParseProblem(raw any, path string) (Problem, Errors) {
	var errs Errors
	variant, obj, ok := resolveVariant(raw, path, problemVariants, &errs)
	if !ok {
		return nil, errs
	}
	values := checkObject(obj, path, variant.Fields, &errs, DiscriminatorField)
	if len(errs) > 0 {
		return nil, errs
	}
	return buildProblem(variant.Name, values), nil
}

func buildProblem(name string, values map[string]any) Problem {
	lattice := values["Lattice"].(Lattice)
	switch name {
	case ProblemHeisenberg:
		return NewHeisenberg(lattice)
	case ProblemJ1J2:
		return NewJ1J2(lattice, values["J2"].(float64))
	case ProblemHubbard:
		return NewHubbard(lattice, values["U"].(float64))
	case ProblemIsing:
		return NewIsing(lattice, values["h"].(float64))
	default:
		panic(fmt.Sprintf("model: problem variant %q has no constructor", name))
	}
}
