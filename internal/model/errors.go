package model

import (
	"fmt"
	"strings"
)

// Kind classifies a validation failure.
type Kind string

const (
	DiscriminatorError Kind = "DiscriminatorError" // tag missing or not a known variant
	FieldMissingError  Kind = "FieldMissingError"  // required field absent
	FieldTypeError     Kind = "FieldTypeError"     // present but not coercible
	RangeError         Kind = "RangeError"         // numeric bound violated (N)
	PatternError       Kind = "PatternError"       // length or regexp constraint (doi)
	UnknownFieldError  Kind = "UnknownFieldError"  // key not declared by the variant
)

// Validation error codes (E200-E299)
const (
	ErrCodeDiscriminator = "E201"
	ErrCodeMissing       = "E202"
	ErrCodeType          = "E203"
	ErrCodeRange         = "E204"
	ErrCodePattern       = "E205"
	ErrCodeUnknownField  = "E206"
)

// Code returns the stable error code for the kind.
func (k Kind) Code() string {
	switch k {
	case DiscriminatorError:
		return ErrCodeDiscriminator
	case FieldMissingError:
		return ErrCodeMissing
	case FieldTypeError:
		return ErrCodeType
	case RangeError:
		return ErrCodeRange
	case PatternError:
		return ErrCodePattern
	case UnknownFieldError:
		return ErrCodeUnknownField
	default:
		panic(fmt.Sprintf("model: unknown error kind %q", string(k)))
	}
}

// Issue is a single validation failure located by a dotted path.
type Issue struct {
	Path    string `json:"path"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	return fmt.Sprintf("[%s] %s: %s", i.Kind.Code(), i.Path, i.Message)
}

// Errors is the aggregated result of a failed validation.
// Issues keep the order in which fields are declared.
type Errors []Issue

// Error implements the error interface.
func (e Errors) Error() string {
	switch len(e) {
	case 0:
		return "no validation errors"
	case 1:
		return e[0].Error()
	}
	parts := make([]string, len(e))
	for i, issue := range e {
		parts[i] = issue.Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(e), strings.Join(parts, "; "))
}

// Paths lists the path of every issue, in order.
func (e Errors) Paths() []string {
	paths := make([]string, len(e))
	for i, issue := range e {
		paths[i] = issue.Path
	}
	return paths
}

// Has reports whether an issue of the given kind exists at path.
func (e Errors) Has(path string, kind Kind) bool {
	for _, issue := range e {
		if issue.Path == path && issue.Kind == kind {
			return true
		}
	}
	return false
}

func (e *Errors) add(path string, kind Kind, format string, args ...any) {
	*e = append(*e, Issue{Path: path, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// join appends a field name to a dotted path prefix.
func join(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}
