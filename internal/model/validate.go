package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// resolveVariant reads the discriminator of raw and selects the matching case.
func resolveVariant(raw any, path string, variants []Variant, errs *Errors) (Variant, map[string]any, bool) {
	obj, ok := asObject(raw)
	if !ok {
		errs.add(path, FieldTypeError, "must be an object, got %s", describe(raw))
		return Variant{}, nil, false
	}

	tagPath := join(path, DiscriminatorField)
	expected := quoteList(variantNames(variants))
	tag, present := obj[DiscriminatorField]
	if !present {
		errs.add(tagPath, DiscriminatorError, "missing discriminator, expected one of %s", expected)
		return Variant{}, nil, false
	}
	name, isString := tag.(string)
	if !isString {
		errs.add(tagPath, DiscriminatorError, "discriminator must be a string, got %s; expected one of %s", describe(tag), expected)
		return Variant{}, nil, false
	}
	variant, found := findVariant(variants, name)
	if !found {
		errs.add(tagPath, DiscriminatorError, "unknown variant %q, expected one of %s", name, expected)
		return Variant{}, nil, false
	}
	return variant, obj, true
}

// checkObject is checkFields plus a strict pass: keys listed in reserved are
// accepted unchecked and any other undeclared key is reported.
func checkObject(obj map[string]any, prefix string, fields []Field, errs *Errors, reserved ...string) map[string]any {
	values := checkFields(obj, prefix, fields, errs)
	for _, key := range unknownKeys(obj, fields, reserved) {
		errs.add(join(prefix, key), UnknownFieldError, "extra field not permitted")
	}
	return values
}

// checkFields validates the declared fields of obj and returns the coerced
// values of every field that passed. Undeclared keys are not looked at.
func checkFields(obj map[string]any, prefix string, fields []Field, errs *Errors) map[string]any {
	values := make(map[string]any, len(fields))
	for _, f := range fields {
		path := join(prefix, f.Name)
		raw, present := obj[f.Name]
		if !present {
			if f.Required {
				errs.add(path, FieldMissingError, "field required")
			}
			continue
		}
		if raw == nil && f.Nullable {
			continue
		}
		if v, ok := checkField(f, raw, path, errs); ok {
			values[f.Name] = v
		}
	}
	return values
}

func checkField(f Field, raw any, path string, errs *Errors) (any, bool) {
	switch f.Type {
	case TypeInteger:
		n, err := asInt(raw)
		if err != nil {
			if errors.Is(err, errOverflow) && f.bounded() {
				errs.add(path, RangeError, "%s", f.rangeMessage())
			} else {
				errs.add(path, FieldTypeError, "%s, got %s", err, describe(raw))
			}
			return nil, false
		}
		if (f.Minimum != nil && n < *f.Minimum) || (f.Maximum != nil && n > *f.Maximum) {
			errs.add(path, RangeError, "%s", f.rangeMessage())
			return nil, false
		}
		return n, true

	case TypeNumber:
		x, err := asFloat(raw)
		if err != nil {
			errs.add(path, FieldTypeError, "%s, got %s", err, describe(raw))
			return nil, false
		}
		return x, true

	case TypeBoolean:
		b, err := asBool(raw)
		if err != nil {
			errs.add(path, FieldTypeError, "%s, got %s", err, describe(raw))
			return nil, false
		}
		return b, true

	case TypeString:
		s, err := asString(raw)
		if err != nil {
			errs.add(path, FieldTypeError, "%s, got %s", err, describe(raw))
			return nil, false
		}
		// The length gate applies before the pattern.
		if f.MinLength > 0 && utf8.RuneCountInString(s) < f.MinLength {
			errs.add(path, PatternError, "must have at least %d characters", f.MinLength)
			return nil, false
		}
		if f.Pattern != nil && !f.Pattern.MatchString(s) {
			errs.add(path, PatternError, "must match pattern %s", f.Pattern)
			return nil, false
		}
		return s, true

	case TypeLattice:
		lattice, nested := ParseLattice(raw, path)
		*errs = append(*errs, nested...)
		return lattice, len(nested) == 0

	case TypeProblem:
		problem, nested := ParseProblem(raw, path)
		*errs = append(*errs, nested...)
		return problem, len(nested) == 0

	default:
		panic(fmt.Sprintf("model: field %q has unsupported type %q", f.Name, f.Type))
	}
}

func (f Field) bounded() bool {
	return f.Minimum != nil || f.Maximum != nil
}

func (f Field) rangeMessage() string {
	if f.RangeMessage != "" {
		return f.RangeMessage
	}
	switch {
	case f.Minimum != nil && f.Maximum != nil:
		return fmt.Sprintf("must be between %d and %d", *f.Minimum, *f.Maximum)
	case f.Minimum != nil:
		return fmt.Sprintf("must be at least %d", *f.Minimum)
	default:
		return fmt.Sprintf("must be at most %d", *f.Maximum)
	}
}

// unknownKeys returns the undeclared keys of obj in sorted order.
func unknownKeys(obj map[string]any, fields []Field, reserved []string) []string {
	var unknown []string
	for key := range obj {
		if slices.Contains(reserved, key) {
			continue
		}
		if slices.ContainsFunc(fields, func(f Field) bool { return f.Name == key }) {
			continue
		}
		unknown = append(unknown, key)
	}
	slices.Sort(unknown)
	return unknown
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
