// Package model defines the benchmark record and validates untyped input
// against it.
//
// A Record owns one Problem, which owns one Lattice. Problem and Lattice are
// closed tagged unions selected by their "name" field:
//
//	Lattice: Chain | Square | Rectangular | Triangular | Kagome | Honeycomb | Cubic
//	Problem: Heisenberg | J1-J2 | Hubbard | Ising
//
// Field declarations live in rule tables (LatticeVariants, ProblemVariants,
// RecordFields) shared by the validator and the schema exporter, so the two
// cannot drift apart.
//
// Validation is batch: Parse reports every failing field as an Issue with a
// dotted path (for example "problem.Lattice.L"), never just the first one.
// Unknown keys inside a Problem or Lattice are rejected. Unknown top-level
// keys are ignored and do not survive into the Record, its encoding or its
// fingerprint.
//
// The package is pure. It does no I/O, holds no mutable state and is safe for
// concurrent use.
package model
