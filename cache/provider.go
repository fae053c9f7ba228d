package cache

import (
	"fmt"

	localesort "github.com/AFurtner/datatablesLocaleSort"
)

// SortKeyProvider is the boundary which the host engine's sort loop
// consumes: given a column path, it yields one integer sort key per row, in
// original row order. Between invalidations, repeated calls for the same
// column return the identical array.
type SortKeyProvider interface {
	ProvideSortKeys(path string) ([]int, error)
}

// ProvideSortKeys implements SortKeyProvider by returning the cached rank
// array, building it on demand.
func (cache *ColumnRankCache) ProvideSortKeys(path string) ([]int, error) {
	return cache.Get(path)
}

// Formatter post-processes a single rank before the host engine consumes it.
type Formatter func(rank int) int

// IdentityFormatter returns the rank unchanged, so the host engine applies
// plain integer comparison instead of re-deriving a string comparison.
func IdentityFormatter(rank int) int {
	return rank
}

// Registry is the host-facing registration point for named sort key
// providers and rank formatters.
type Registry struct {
	providers  map[string]SortKeyProvider
	formatters map[string]Formatter
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		providers:  make(map[string]SortKeyProvider),
		formatters: make(map[string]Formatter),
	}
}

// RegisterProvider installs a sort key provider under the given name,
// replacing any previous registration of that name.
func (registry *Registry) RegisterProvider(name string, provider SortKeyProvider) {
	registry.providers[name] = provider
}

// RegisterFormatter installs a rank formatter under the given name,
// replacing any previous registration of that name.
func (registry *Registry) RegisterFormatter(name string, formatter Formatter) {
	registry.formatters[name] = formatter
}

// Provider retrieves a registered sort key provider by name.
func (registry *Registry) Provider(name string) (SortKeyProvider, error) {
	provider, exists := registry.providers[name]
	if !exists {
		return nil, fmt.Errorf("unknown sort key provider %s", name)
	}

	return provider, nil
}

// Formatter retrieves a registered rank formatter by name.
func (registry *Registry) Formatter(name string) (Formatter, error) {
	formatter, exists := registry.formatters[name]
	if !exists {
		return nil, fmt.Errorf("unknown rank formatter %s", name)
	}

	return formatter, nil
}

// InstallInto registers the cache as the locale rank provider, together
// with the identity formatter, under the default names.
func (cache *ColumnRankCache) InstallInto(registry *Registry) {
	registry.RegisterProvider(localesort.ProviderName, cache)
	registry.RegisterFormatter(localesort.FormatterName, IdentityFormatter)
}
