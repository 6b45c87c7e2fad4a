package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/OpenQS/speed/internal/canonical"
)

// Record is one benchmark measurement: a problem, its size, the wall-clock
// time it took, where it ran and which publication reports it.
//
// Records are only produced by Parse and ParseJSON, so a Record value always
// satisfies every constraint of the schema.
type Record struct {
	Problem      Problem
	N            int32
	Time         float64 // seconds
	Architecture string
	DOI          string
	Extra        *string // nil when absent or null
}

// Parse validates raw, typically the result of decoding a JSON object, and
// builds a Record. Every failing field is reported: on failure the returned
// error is an Errors value and the Record is zero.
func Parse(raw any) (Record, error) {
	var errs Errors
	obj, ok := asObject(raw)
	if !ok {
		errs.add("", FieldTypeError, "record must be an object, got %s", describe(raw))
		return Record{}, errs
	}

	// Undeclared top-level keys are dropped. Variants stay strict.
	values := checkFields(obj, "", recordFields, &errs)
	if len(errs) > 0 {
		return Record{}, errs
	}

	rec := Record{
		Problem:      values["problem"].(Problem),
		N:            int32(values["N"].(int64)),
		Time:         values["time"].(float64),
		Architecture: values["architecture"].(string),
		DOI:          values["doi"].(string),
	}
	if extra, ok := values["extra"].(string); ok {
		rec.Extra = &extra
	}
	return rec, nil
}

// ParseJSON decodes a single JSON document and validates it with Parse.
// Numbers are decoded exactly, so integers beyond 2^53 are range-checked
// rather than rounded.
func ParseJSON(data []byte) (Record, error) {
	raw, err := DecodeJSON(data)
	if err != nil {
		return Record{}, err
	}
	return Parse(raw)
}

// DecodeJSON decodes one JSON value keeping numbers as json.Number.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode json: unexpected data after top-level value")
	}
	return raw, nil
}

// Wire returns the record in its JSON object shape. Extra is omitted when
// unset.
func (r Record) Wire() map[string]any {
	w := map[string]any{
		"problem":      r.Problem.wire(),
		"N":            r.N,
		"time":         r.Time,
		"architecture": r.Architecture,
		"doi":          r.DOI,
	}
	if r.Extra != nil {
		w["extra"] = *r.Extra
	}
	return w
}

// MarshalJSON encodes the record as canonical JSON.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Problem == nil {
		return nil, errors.New("model: record has no problem")
	}
	return canonical.Marshal(r.Wire())
}

// Fingerprint identifies the record by content.
func (r Record) Fingerprint() (string, error) {
	if r.Problem == nil {
		return "", errors.New("model: record has no problem")
	}
	return canonical.Fingerprint(canonical.DomainRecord, r.Wire())
}
