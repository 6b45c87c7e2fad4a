// Package schema renders the record model as a JSON Schema (Draft 2020-12)
// document.
//
// The document is derived from the rule tables in package model and nothing
// else, so it changes only when the model does. Output is canonical JSON:
// exporting twice yields byte-identical files.
package schema

import (
	"fmt"

	"github.com/OpenQS/speed/internal/canonical"
	"github.com/OpenQS/speed/internal/model"
)

// Draft is the JSON Schema dialect of the exported document.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// DefaultFilename is where the CLI writes the schema when no path is given.
const DefaultFilename = "schema.json"

const (
	rootTitle       = "BenchmarkRecord"
	rootDescription = "A benchmark of a quantum many-body simulation: the problem solved, the system size, the wall-clock time, the hardware and the publication reporting it."
)

// Document builds the schema as a JSON object tree.
func Document() map[string]any {
	defs := map[string]any{}
	for _, v := range model.LatticeVariants() {
		defs[v.Title] = variantSchema(v)
	}
	for _, v := range model.ProblemVariants() {
		defs[v.Title] = variantSchema(v)
	}

	properties, required := objectFields(model.RecordFields())
	return map[string]any{
		"$schema":     Draft,
		"$defs":       defs,
		"title":       rootTitle,
		"description": rootDescription,
		"type":        "object",
		"properties":  properties,
		"required":    required,
	}
}

// Export returns the indented canonical encoding of Document, terminated by a
// newline.
func Export() ([]byte, error) {
	data, err := canonical.MarshalIndent(Document())
	if err != nil {
		return nil, fmt.Errorf("export schema: %w", err)
	}
	return data, nil
}

// Fingerprint identifies the current schema by content.
func Fingerprint() (string, error) {
	return canonical.Fingerprint(canonical.DomainSchema, Document())
}

func variantSchema(v model.Variant) map[string]any {
	properties, required := objectFields(v.Fields)
	properties[model.DiscriminatorField] = map[string]any{
		"const": v.Name,
		"type":  "string",
		"title": "Name",
	}
	s := map[string]any{
		"title":                v.Title,
		"type":                 "object",
		"properties":           properties,
		"required":             append([]any{model.DiscriminatorField}, required...),
		"additionalProperties": false,
	}
	if v.Description != "" {
		s["description"] = v.Description
	}
	return s
}

func objectFields(fields []model.Field) (map[string]any, []any) {
	properties := make(map[string]any, len(fields))
	required := []any{}
	for _, f := range fields {
		properties[f.Name] = fieldSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return properties, required
}

func fieldSchema(f model.Field) map[string]any {
	s := valueSchema(f)
	if f.Nullable {
		s = map[string]any{
			"anyOf":   []any{s, map[string]any{"type": "null"}},
			"default": nil,
		}
	}
	if f.Title != "" {
		s["title"] = f.Title
	}
	if f.Description != "" {
		s["description"] = f.Description
	}
	if len(f.Examples) > 0 {
		s["examples"] = append([]string(nil), f.Examples...)
	}
	return s
}

// valueSchema covers the type and validation keywords of f.
func valueSchema(f model.Field) map[string]any {
	switch f.Type {
	case model.TypeInteger, model.TypeNumber, model.TypeBoolean, model.TypeString:
		s := map[string]any{"type": string(f.Type)}
		if f.Minimum != nil {
			s["minimum"] = *f.Minimum
		}
		if f.Maximum != nil {
			s["maximum"] = *f.Maximum
		}
		if f.MinLength > 0 {
			s["minLength"] = f.MinLength
		}
		if f.Pattern != nil {
			s["pattern"] = f.Pattern.String()
		}
		return s
	case model.TypeLattice:
		return unionSchema(model.LatticeVariants())
	case model.TypeProblem:
		return unionSchema(model.ProblemVariants())
	default:
		panic(fmt.Sprintf("schema: field %q has unsupported type %q", f.Name, f.Type))
	}
}

// unionSchema expresses a tagged union as oneOf plus the OpenAPI-style
// discriminator annotation that form generators understand.
func unionSchema(variants []model.Variant) map[string]any {
	oneOf := make([]any, len(variants))
	mapping := make(map[string]any, len(variants))
	for i, v := range variants {
		ref := "#/$defs/" + v.Title
		oneOf[i] = map[string]any{"$ref": ref}
		mapping[v.Name] = ref
	}
	return map[string]any{
		"oneOf": oneOf,
		"discriminator": map[string]any{
			"propertyName": model.DiscriminatorField,
			"mapping":      mapping,
		},
	}
}
