package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/sw33tLie/platescope/pkg/vehicle"
)

// Sink is an append-only record store plus the loader for what it already holds.
// A Sink has a single appender; callers serialize writers across processes.
type Sink interface {
	// LoadExisting returns the persisted plates, or an empty slice when the store does not exist yet.
	LoadExisting(ctx context.Context) ([]string, error)
	// Append persists one record, creating the store with its header or schema if needed.
	Append(ctx context.Context, r vehicle.Record) error
	// Records returns every persisted record in insertion order.
	Records(ctx context.Context) ([]vehicle.Record, error)
	Close() error
}

const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// DefaultPath returns the default store file for a backend.
func DefaultPath(backend string) string {
	if backend == BackendSQLite {
		return "dataset.sqlite"
	}
	return "dataset.csv"
}

// OpenSink opens the store at path with the named backend.
func OpenSink(backend, path string) (Sink, error) {
	if path == "" {
		path = DefaultPath(backend)
	}
	switch strings.ToLower(backend) {
	case BackendCSV, "":
		return NewCSV(path), nil
	case BackendSQLite:
		return Open(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (available: csv, sqlite)", backend)
	}
}
