package localesort

// State describes the lifecycle of a single column's cached rank array.
type State string

const (
	// StateEmpty indicates that no rank array is cached for the column,
	// and the next access will trigger a build.
	StateEmpty State = "EMPTY"

	// StateBuilding indicates that a rank array is currently being built
	// for the column.
	StateBuilding State = "BUILDING"

	// StateReady indicates that a complete rank array is cached for the
	// column.
	StateReady State = "READY"
)

const (
	// ProviderName is the name under which the rank cache registers
	// itself as a sort key provider with the host engine.
	ProviderName = "localeRank"

	// FormatterName is the name under which the identity rank formatter
	// is registered, so that the host engine compares the integer ranks
	// as-is instead of re-deriving string comparisons.
	FormatterName = "localeRankIdentity"
)
