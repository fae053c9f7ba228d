// Package rank converts column value snapshots into rank arrays: one
// integer per original row position, consistent with the column's collation
// order, with equal values sharing a rank. The host engine's generic sort
// then compares these integers instead of re-collating strings on every
// comparison.
package rank

import (
	"sort"
	"strings"

	"github.com/AFurtner/datatablesLocaleSort/collation"
	"github.com/AFurtner/datatablesLocaleSort/config"
)

// entry is the transient per-cell working state of a single build: the
// original row position, the value after folding, and whether the raw value
// is pure 7-bit. Entries are discarded once ranks are scattered back.
type entry struct {
	row   int
	value string
	ascii bool
}

// Builder produces rank arrays for a single column. The collator and the
// fast path decision are frozen at construction time.
type Builder struct {
	collator        collation.Collator
	caseInsensitive bool
	fastPath        bool
}

// NewBuilder creates a new Builder for the given resolved column
// configuration.
func NewBuilder(column config.ResolvedColumnConfig) *Builder {
	return &Builder{
		collator:        collation.ForColumn(column),
		caseInsensitive: column.CaseInsensitive,
		fastPath:        column.FastPath,
	}
}

// Build converts a snapshot of column values into a rank array, indexed by
// original row position. Equal values share the rank of the first position
// of their tie run, so ranks lie in [0, n-1] but are not necessarily
// contiguous after ties; only their relative order is meaningful to the
// consuming sort.
func (builder *Builder) Build(values []string) []int {
	entries := make([]entry, len(values))
	for i, value := range values {
		ascii := collation.IsASCII(value)

		normalized := value
		if ascii && builder.caseInsensitive {
			normalized = collation.FoldASCII(value)
		}

		entries[i] = entry{
			row:   i,
			value: normalized,
			ascii: ascii,
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return builder.compare(entries[i], entries[j]) < 0
	})

	ranks := make([]int, len(entries))

	currentRank := 0
	for k := range entries {
		if k > 0 && builder.compare(entries[k-1], entries[k]) != 0 {
			currentRank = k
		}

		ranks[entries[k].row] = currentRank
	}

	return ranks
}

// compare orders two classified entries. A pair of 7-bit values on a fast
// path column is compared by raw code units, which matches collation order
// for the supported European locales once values are folded; everything
// else delegates to the collator.
func (builder *Builder) compare(a, b entry) int {
	if builder.fastPath && a.ascii && b.ascii {
		return strings.Compare(a.value, b.value)
	}

	return builder.collator.Compare(a.value, b.value)
}
