package model

import (
	"math"
	"regexp"
	"slices"
)

// DiscriminatorField is the tag key shared by every union variant.
const DiscriminatorField = "name"

// FieldType is the wire type of a declared field.
type FieldType string

const (
	TypeInteger FieldType = "integer"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeString  FieldType = "string"
	TypeLattice FieldType = "lattice" // nested Lattice union
	TypeProblem FieldType = "problem" // nested Problem union
)

// Field declares one key of an object together with its constraints.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Nullable    bool // null is accepted and treated as unset
	Title       string
	Description string

	Minimum      *int64
	Maximum      *int64
	RangeMessage string

	MinLength int
	Pattern   *regexp.Regexp

	Examples []string
}

// Variant is one case of a tagged union.
type Variant struct {
	Name        string // discriminator value
	Title       string // definition name in the exported schema
	Description string
	Fields      []Field // excludes the discriminator
}

// Field looks up a declared field by name.
func (v Variant) Field(name string) (Field, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// DOIPattern is the anchored pattern every doi must match.
const DOIPattern = `^10\.\d{4,9}/[-._;()/:A-Za-z0-9]+$`

// DOIMinLength is the minimum doi length, counted in characters.
const DOIMinLength = 10

var doiRE = regexp.MustCompile(DOIPattern)

var (
	minN int64 = 1
	maxN int64 = math.MaxInt32
)

// NRangeMessage is reported for every N outside [1, 2^31).
const NRangeMessage = "N must fit in signed 32-bit integer"

func sizeField(name, title string) Field {
	return Field{Name: name, Type: TypeInteger, Required: true, Title: title}
}

var pbcField = Field{
	Name:        "pbc",
	Type:        TypeBoolean,
	Required:    true,
	Title:       "Pbc",
	Description: "Periodic boundary conditions",
}

var latticeVariants = []Variant{
	{Name: "Chain", Title: "Chain", Fields: []Field{sizeField("L", "L"), pbcField}},
	{Name: "Square", Title: "Square", Fields: []Field{sizeField("L", "L"), pbcField}},
	{Name: "Rectangular", Title: "Rectangular", Fields: []Field{sizeField("Lx", "Lx"), sizeField("Ly", "Ly"), pbcField}},
	{Name: "Triangular", Title: "Triangular", Fields: []Field{sizeField("L", "L")}},
	{Name: "Kagome", Title: "Kagome", Fields: []Field{sizeField("L", "L")}},
	{Name: "Honeycomb", Title: "Honeycomb", Fields: []Field{sizeField("L", "L")}},
	{Name: "Cubic", Title: "Cubic", Fields: []Field{sizeField("L", "L")}},
}

var latticeField = Field{Name: "Lattice", Type: TypeLattice, Required: true, Title: "Lattice"}

func couplingField(name, title, description string) Field {
	return Field{Name: name, Type: TypeNumber, Required: true, Title: title, Description: description}
}

var problemVariants = []Variant{
	{
		Name:        "Heisenberg",
		Title:       "HeisenbergProblem",
		Description: "Heisenberg model with J = 1.0",
		Fields:      []Field{latticeField},
	},
	{
		Name:        "J1-J2",
		Title:       "J1J2Problem",
		Description: "J1-J2 model with J1 = 1.0",
		Fields:      []Field{latticeField, couplingField("J2", "J2", "Next-nearest-neighbour coupling")},
	},
	{
		Name:        "Hubbard",
		Title:       "HubbardProblem",
		Description: "Hubbard model with t = 1.0",
		Fields:      []Field{latticeField, couplingField("U", "U", "On-site interaction")},
	},
	{
		Name:        "Ising",
		Title:       "IsingProblem",
		Description: "Transverse-field Ising model",
		Fields:      []Field{latticeField, couplingField("h", "H", "Field strength")},
	},
}

var recordFields = []Field{
	{Name: "problem", Type: TypeProblem, Required: true, Title: "Problem"},
	{
		Name:         "N",
		Type:         TypeInteger,
		Required:     true,
		Title:        "N",
		Description:  "System size",
		Minimum:      &minN,
		Maximum:      &maxN,
		RangeMessage: NRangeMessage,
	},
	{Name: "time", Type: TypeNumber, Required: true, Title: "Time", Description: "Wall-clock time in seconds"},
	{
		Name:        "architecture",
		Type:        TypeString,
		Required:    true,
		Title:       "Architecture",
		Description: "Hardware the benchmark ran on",
		Examples:    knownArchitectures,
	},
	{
		Name:        "doi",
		Type:        TypeString,
		Required:    true,
		Title:       "Doi",
		Description: "DOI of the publication reporting the benchmark",
		MinLength:   DOIMinLength,
		Pattern:     doiRE,
	},
	{Name: "extra", Type: TypeString, Nullable: true, Title: "Extra", Description: "Free-form notes"},
}

// LatticeVariants returns the lattice union cases in declaration order.
func LatticeVariants() []Variant { return cloneVariants(latticeVariants) }

// ProblemVariants returns the problem union cases in declaration order.
func ProblemVariants() []Variant { return cloneVariants(problemVariants) }

// RecordFields returns the top-level record fields in declaration order.
func RecordFields() []Field { return cloneFields(recordFields) }

// LatticeVariant looks up a lattice case by its tag.
func LatticeVariant(name string) (Variant, bool) { return findVariant(latticeVariants, name) }

// ProblemVariant looks up a problem case by its tag.
func ProblemVariant(name string) (Variant, bool) { return findVariant(problemVariants, name) }

func findVariant(variants []Variant, name string) (Variant, bool) {
	for _, v := range variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

func variantNames(variants []Variant) []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return names
}

func cloneVariants(variants []Variant) []Variant {
	out := make([]Variant, len(variants))
	for i, v := range variants {
		v.Fields = cloneFields(v.Fields)
		out[i] = v
	}
	return out
}

func cloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Examples = slices.Clone(f.Examples)
		out[i] = f
	}
	return out
}
