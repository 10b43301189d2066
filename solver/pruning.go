package solver

// PruningMethod selects the solver's pruning strategy. It is a closed
// enumeration; anything else maps to the default.
type PruningMethod uint8

const (
	// PruningNone disables pruning.
	PruningNone PruningMethod = iota
	// PruningSimple removes only trivially unneeded edges.
	PruningSimple
	// PruningGW is Goemans-Williamson pruning, the default.
	PruningGW
	// PruningStrong is the strongest (and slowest) pruning.
	PruningStrong
)

// DefaultPruning is the single canonical fallback for unrecognized pruning
// names, applied uniformly across all entry points.
const DefaultPruning = PruningGW

// String returns the wire name of the method.
func (p PruningMethod) String() string {
	switch p {
	case PruningNone:
		return "none"
	case PruningSimple:
		return "simple"
	case PruningGW:
		return "gw"
	case PruningStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// ParsePruning maps a pruning name to its method. Unrecognized input falls
// back to DefaultPruning rather than failing.
func ParsePruning(s string) PruningMethod {
	switch s {
	case "none":
		return PruningNone
	case "simple":
		return PruningSimple
	case "gw":
		return PruningGW
	case "strong":
		return PruningStrong
	default:
		return DefaultPruning
	}
}
