// Package cache owns the per-table rank cache and the provider boundary
// which the host engine's generic sort consumes.
package cache

import (
	"fmt"
	"sync"

	"gopkg.in/birkirb/loggers.v1/log"

	localesort "github.com/AFurtner/datatablesLocaleSort"
	"github.com/AFurtner/datatablesLocaleSort/config"
	"github.com/AFurtner/datatablesLocaleSort/rank"
)

// ColumnSource is the host engine's column data accessor: it snapshots the
// current values of a column in original row order.
type ColumnSource interface {
	// RowCount returns the number of rows currently held by the host.
	RowCount() int

	// ColumnValues returns the raw string values of the given column in
	// original row order, snapshotted at call time.
	ColumnValues(path string) ([]string, error)
}

// LengthMismatchError indicates that a column snapshot disagreed with the
// host's row count, so no consistent rank array could be built from it.
type LengthMismatchError struct {
	path string
	want int
	got  int
}

func (e LengthMismatchError) Error() string {
	return fmt.Sprintf("column %s snapshot has %d values, but the source holds %d rows", e.path, e.got, e.want)
}

// columnEntry tracks the lifecycle of a single column's cached rank array.
type columnEntry struct {
	state localesort.State
	ranks []int
}

// ColumnRankCache maps column paths to their most recently built rank
// arrays. It is owned by the table configuration context which created it,
// never shared across tables. Safe for use from multiple goroutines: a
// given column is only ever rebuilt by one caller at a time, and readers
// observe either the previous complete array or the new one, never a
// partially built one.
//
// The cache performs no data change detection of its own. A host which
// mutates its rows without invalidating serves stale ranks; that is a
// caller contract violation, not a detectable error.
type ColumnRankCache struct {
	mu       sync.Mutex
	source   ColumnSource
	table    config.ResolvedTableConfig
	builders map[string]*rank.Builder
	entries  map[string]*columnEntry
}

// NewColumnRankCache creates an empty cache for the given resolved table
// configuration, reading column snapshots from the given source. One
// builder per configured column is created up front; rank arrays are built
// lazily on first access.
func NewColumnRankCache(source ColumnSource, table config.ResolvedTableConfig) *ColumnRankCache {
	columns := table.Columns()

	builders := make(map[string]*rank.Builder, len(columns))
	entries := make(map[string]*columnEntry, len(columns))
	for _, column := range columns {
		builders[column.Path] = rank.NewBuilder(column)
		entries[column.Path] = &columnEntry{state: localesort.StateEmpty}
	}

	return &ColumnRankCache{
		source:   source,
		table:    table,
		builders: builders,
		entries:  entries,
	}
}

// Get returns the rank array for the given column, building it first when
// none is cached. Between invalidations every call returns the identical
// slice, so callers must treat it as read-only. A failure of the underlying
// source is propagated and leaves the column in its prior state.
func (cache *ColumnRankCache) Get(path string) ([]int, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	entry, exists := cache.entries[path]
	if !exists {
		return nil, config.ErrUnknownColumn
	}

	if entry.state != localesort.StateReady {
		if err := cache.rebuildLocked(path, entry); err != nil {
			return nil, err
		}
	}

	return entry.ranks, nil
}

// Invalidate discards the cached rank array of a single column, so that
// the next access rebuilds it from a fresh snapshot. Unknown columns are
// ignored. The column configuration is untouched.
func (cache *ColumnRankCache) Invalidate(path string) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if entry, exists := cache.entries[path]; exists {
		entry.state = localesort.StateEmpty
		entry.ranks = nil
	}
}

// InvalidateAll discards all cached rank arrays at once.
func (cache *ColumnRankCache) InvalidateAll() {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	for _, entry := range cache.entries {
		entry.state = localesort.StateEmpty
		entry.ranks = nil
	}
}

// RebuildNow eagerly rebuilds a single column from a fresh snapshot,
// instead of deferring the cost to the next Get. On failure the column
// keeps its previous rank array.
func (cache *ColumnRankCache) RebuildNow(path string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	entry, exists := cache.entries[path]
	if !exists {
		return config.ErrUnknownColumn
	}

	return cache.rebuildLocked(path, entry)
}

// RebuildAll eagerly rebuilds every configured column. The first failure
// aborts the pass and is returned; columns rebuilt before it keep their new
// arrays.
func (cache *ColumnRankCache) RebuildAll() error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	for _, column := range cache.table.Columns() {
		if err := cache.rebuildLocked(column.Path, cache.entries[column.Path]); err != nil {
			return err
		}
	}

	return nil
}

// State returns the lifecycle state of a column's cache entry. Unknown
// columns report StateEmpty.
func (cache *ColumnRankCache) State(path string) localesort.State {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if entry, exists := cache.entries[path]; exists {
		return entry.state
	}

	return localesort.StateEmpty
}

// rebuildLocked snapshots the column and replaces its rank array. The entry
// only transitions to ready once the new array is complete; any failure
// restores the previous state, with the previous array still in place.
func (cache *ColumnRankCache) rebuildLocked(path string, entry *columnEntry) error {
	previousState := entry.state
	entry.state = localesort.StateBuilding

	values, err := cache.source.ColumnValues(path)
	if err != nil {
		entry.state = previousState
		return err
	}

	if want := cache.source.RowCount(); len(values) != want {
		entry.state = previousState
		return &LengthMismatchError{path: path, want: want, got: len(values)}
	}

	entry.ranks = cache.builders[path].Build(values)
	entry.state = localesort.StateReady

	log.WithFields(
		"column", path,
		"rows", len(values),
	).Debug("Rebuilt column ranks")

	return nil
}
