// Package dataset stores accepted benchmark records as one canonical JSON file
// per record.
//
// A dataset is a flat directory of <id>.json files. Records are identified by
// content fingerprint, so the same benchmark cannot be submitted twice under
// different IDs.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/OpenQS/speed/internal/canonical"
	"github.com/OpenQS/speed/internal/model"
)

// ErrDuplicate is returned by Add when an identical record is already stored.
var ErrDuplicate = errors.New("record already in dataset")

// Entry is one stored record.
type Entry struct {
	ID          string
	Path        string
	Fingerprint string
	Record      model.Record
}

// Dir is a dataset directory. It is safe for concurrent use within one
// process; separate processes writing the same directory are not coordinated.
type Dir struct {
	root   string
	ids    IDGenerator
	logger *slog.Logger

	mu    sync.Mutex
	index map[string]string // fingerprint -> id, built on first use
}

// Option configures a Dir.
type Option func(*Dir)

// WithIDGenerator overrides the UUIDv7 default.
func WithIDGenerator(g IDGenerator) Option {
	return func(d *Dir) { d.ids = g }
}

// WithLogger sets the logger for the directory.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dir) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Open returns the dataset rooted at root, creating the directory if needed.
func Open(root string, opts ...Option) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create dataset dir: %w", err)
	}
	d := &Dir{
		root:   root,
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Root returns the dataset directory.
func (d *Dir) Root() string { return d.root }

// Add validates raw and stores it under a fresh ID.
//
// Validation failures are returned as model.Errors. A record whose
// fingerprint matches a stored one fails with an error wrapping ErrDuplicate.
func (d *Dir) Add(ctx context.Context, raw any) (Entry, error) {
	rec, err := model.Parse(raw)
	if err != nil {
		return Entry{}, err
	}
	fp, err := rec.Fingerprint()
	if err != nil {
		return Entry{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.loadIndex(ctx); err != nil {
		return Entry{}, err
	}
	if id, ok := d.index[fp]; ok {
		return Entry{}, fmt.Errorf("%w: matches %s", ErrDuplicate, id)
	}

	data, err := canonical.MarshalIndent(rec.Wire())
	if err != nil {
		return Entry{}, fmt.Errorf("encode record: %w", err)
	}

	id := d.ids.Generate()
	path := d.pathFor(id)
	if _, err := os.Stat(path); err == nil {
		return Entry{}, fmt.Errorf("record file %s already exists", path)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return Entry{}, err
	}

	d.index[fp] = id
	d.logger.Info("stored record", "id", id, "fingerprint", fp[:12])
	return Entry{ID: id, Path: path, Fingerprint: fp, Record: rec}, nil
}

// List returns every valid stored record ordered by ID. Files that no longer
// validate are skipped with a warning.
func (d *Dir) List(ctx context.Context) ([]Entry, error) {
	names, err := d.recordFiles()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := d.read(name)
		if err != nil {
			d.logger.Warn("skipping invalid record file", "file", name, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// loadIndex fingerprints the stored records once. Callers hold d.mu.
func (d *Dir) loadIndex(ctx context.Context) error {
	if d.index != nil {
		return nil
	}
	entries, err := d.List(ctx)
	if err != nil {
		return err
	}
	index := make(map[string]string, len(entries))
	for _, e := range entries {
		index[e.Fingerprint] = e.ID
	}
	d.index = index
	d.logger.Debug("indexed dataset", "dir", d.root, "records", len(index))
	return nil
}

func (d *Dir) read(name string) (Entry, error) {
	path := filepath.Join(d.root, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	rec, err := model.ParseJSON(data)
	if err != nil {
		return Entry{}, err
	}
	fp, err := rec.Fingerprint()
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:          strings.TrimSuffix(name, ".json"),
		Path:        path,
		Fingerprint: fp,
		Record:      rec,
	}, nil
}

func (d *Dir) recordFiles() ([]string, error) {
	dirEntries, err := os.ReadDir(d.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}
	var names []string
	for _, e := range dirEntries {
		if e.Type().IsRegular() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (d *Dir) pathFor(id string) string {
	return filepath.Join(d.root, id+".json")
}

// writeFileAtomic writes through a temp file so readers never see a partial
// record.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".record-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close record: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename record: %w", err)
	}
	return nil
}
