package resolve

// Kind is the shape of host member a role binds to
type Kind uint8

const (
	// KindSlot is a mutable field read or written in place
	KindSlot Kind = iota
	// KindEntry is a callable: an exported method or a func-typed field
	KindEntry
)

func (k Kind) String() string {
	switch k {
	case KindSlot:
		return "slot"
	case KindEntry:
		return "entry"
	default:
		return "unknown"
	}
}

// ParseKind maps the binding-table spelling to a Kind
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "", "slot", "field":
		return KindSlot, true
	case "entry", "method", "func":
		return KindEntry, true
	}
	return 0, false
}

// Strategy records which pass bound a role
type Strategy uint8

const (
	// StrategyNone marks a permanent failure
	StrategyNone Strategy = iota
	// StrategyExactName bound a candidate name
	StrategyExactName
	// StrategyStructural bound by type and declaration position
	StrategyStructural
)

func (s Strategy) String() string {
	switch s {
	case StrategyExactName:
		return "exact-name"
	case StrategyStructural:
		return "structural"
	default:
		return "none"
	}
}
