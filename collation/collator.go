package collation

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/AFurtner/datatablesLocaleSort/config"
)

// Collator is the interface that wraps a three-way string comparison.
type Collator interface {
	// Compare returns -1, 0, or +1 depending on whether a sorts before,
	// equal to, or after b. The implied ordering must be a strict weak
	// ordering, so that equal-rank grouping stays correct.
	Compare(a, b string) int
}

// localeCollator compares strings according to a locale's collation order.
type localeCollator struct {
	collator *collate.Collator
}

// New creates a Collator for the given language tag. With caseInsensitive,
// case differences are ignored, which subsumes locale case folding of the
// compared values.
func New(tag language.Tag, caseInsensitive bool) Collator {
	var options []collate.Option
	if caseInsensitive {
		options = append(options, collate.IgnoreCase)
	}

	return &localeCollator{collator: collate.New(tag, options...)}
}

func (collator *localeCollator) Compare(a, b string) int {
	return collator.collator.CompareString(a, b)
}

// ordinalCollator compares strings by their raw code units.
type ordinalCollator struct {
	caseInsensitive bool
}

// Ordinal creates a Collator which compares by raw code units, folding
// ASCII case first when caseInsensitive. This is the degraded but defined
// behavior for columns without a usable locale.
func Ordinal(caseInsensitive bool) Collator {
	return ordinalCollator{caseInsensitive: caseInsensitive}
}

func (collator ordinalCollator) Compare(a, b string) int {
	if collator.caseInsensitive {
		a = FoldASCII(a)
		b = FoldASCII(b)
	}

	return strings.Compare(a, b)
}

// ForColumn builds the Collator configured for the given column: locale
// aware when the column resolved to a concrete language tag, ordinal
// otherwise.
func ForColumn(column config.ResolvedColumnConfig) Collator {
	if column.Tag == language.Und {
		return Ordinal(column.CaseInsensitive)
	}

	return New(column.Tag, column.CaseInsensitive)
}
