// Package loader reads benchmark record files into untyped values ready for
// model.Parse.
//
// Supported formats, chosen by file extension:
//   - .json        encoding/json, numbers kept exact
//   - .yaml, .yml  gopkg.in/yaml.v3, single document
//   - .cue         cuelang.org/go, must evaluate to a concrete value
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/OpenQS/speed/internal/model"
)

// Error codes, shared by every CLI command.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeScanError    = "E002" // Directory scan error
	ErrCodeNoFiles      = "E003" // No record files found
	ErrCodeDecodeFailed = "E004" // File could not be decoded
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeUnsupported  = "E006" // Unsupported file extension
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeDuplicate    = "E008" // Record already present
)

// Format is a record file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".cue":
		return FormatCUE, true
	default:
		return "", false
	}
}

// LoadError is an operational failure reading a record file. Validation
// failures of the content are not LoadErrors.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Document is one decoded record file.
type Document struct {
	Path   string
	Format Format
	Value  any
}

// Loader reads record files.
type Loader struct {
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Loader. Without options it logs to slog.Default().
func New(opts ...Option) *Loader {
	l := &Loader{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load expands directories in paths and decodes every record file found.
// It keeps going after a bad file and returns every error, so one run reports
// all broken inputs.
func (l *Loader) Load(ctx context.Context, paths []string) ([]Document, []error) {
	var (
		docs []Document
		errs []error
	)
	l.Walk(ctx, paths, func(doc Document, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		docs = append(docs, doc)
	})
	return docs, errs
}

// Walk is Load with results delivered to fn one at a time, in the order the
// paths were given and the directories were listed. Each call carries either
// a document or the error for that input. A cancelled ctx ends the walk with
// one final call carrying ctx.Err().
func (l *Loader) Walk(ctx context.Context, paths []string, fn func(Document, error)) {
	for _, path := range paths {
		files, err := l.expand(path)
		if err != nil {
			fn(Document{}, err)
			continue
		}
		for _, file := range files {
			if err := ctx.Err(); err != nil {
				fn(Document{}, err)
				return
			}
			fn(l.LoadFile(file))
		}
	}
}

func (l *Loader) expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "path not found", Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "cannot access path", Err: err}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := FindRecordFiles(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Path: path, Message: "error scanning directory", Err: err}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Path: path, Message: "no record files found"}
	}
	l.logger.Debug("found record files", "dir", path, "count", len(files))
	return files, nil
}

// LoadFile decodes a single record file.
func (l *Loader) LoadFile(path string) (Document, error) {
	format, ok := FormatOf(path)
	if !ok {
		return Document{}, &LoadError{
			Code:    ErrCodeUnsupported,
			Path:    path,
			Message: fmt.Sprintf("unsupported extension %q (want .json, .yaml, .yml or .cue)", filepath.Ext(path)),
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "path not found", Err: err}
	}
	if err != nil {
		return Document{}, &LoadError{Code: ErrCodeGeneric, Path: path, Message: "read failed", Err: err}
	}

	value, err := Decode(format, path, data)
	if err != nil {
		return Document{}, &LoadError{Code: ErrCodeDecodeFailed, Path: path, Message: err.Error(), Err: err}
	}
	l.logger.Debug("loaded record file", "path", path, "format", string(format))
	return Document{Path: path, Format: format, Value: value}, nil
}

// Decode turns data in the given format into an untyped value. filename is
// only used in CUE error positions.
func Decode(format Format, filename string, data []byte) (any, error) {
	switch format {
	case FormatJSON:
		return model.DecodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatCUE:
		return decodeCUE(filename, data)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func decodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var value any
	if err := dec.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decode yaml: empty document")
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	var next any
	if err := dec.Decode(&next); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode yaml: expected a single document")
	}
	return value, nil
}

// decodeCUE evaluates a CUE file and round-trips it through JSON so numbers
// reach the validator in the same form as JSON input.
func decodeCUE(filename string, data []byte) (any, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile cue: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("evaluate cue: %w", err)
	}
	js, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export cue: %w", err)
	}
	return model.DecodeJSON(js)
}

// FindRecordFiles walks dir and returns the record files in lexical order.
func FindRecordFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := FormatOf(path); ok {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
