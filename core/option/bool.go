package option

// --- BoolT -----------------------------------------------------------------

// BoolT is an option type for booleans, i.e. a tri-state. Clients may use it
// whenever "unset" has to be distinguishable from false, as with the
// checkbox state of markdown list items.
type BoolT int8

const (
	boolNone  BoolT = 0
	boolFalse BoolT = 1
	boolTrue  BoolT = 2
)

// SomeBool creates an optional bool with an initial value of b.
func SomeBool(b bool) BoolT {
	if b {
		return boolTrue
	}
	return boolFalse
}

// Bool creates an optional bool without an initial value.
func Bool() BoolT {
	return boolNone
}

func (o BoolT) Match(choices interface{}) (value interface{}, err error) {
	return Match(o, choices)
}

func (o BoolT) Equals(other interface{}) bool {
	Tracer().Debugf("EQUALS %v ? %v", o, other)
	if b, ok := other.(bool); ok {
		return !o.IsNone() && o.Unwrap() == b
	}
	if b, ok := other.(BoolT); ok {
		return o == b
	}
	return false
}

// Unwrap returns the boolean value of o. Unset values unwrap to false;
// callers which need the distinction should test IsNone first.
func (o BoolT) Unwrap() bool {
	return o == boolTrue
}

// IsNone returns true if o is unset.
func (o BoolT) IsNone() bool {
	return o == boolNone
}

func (o BoolT) String() string {
	switch o {
	case boolFalse:
		return "false"
	case boolTrue:
		return "true"
	}
	return "Bool.None"
}

var _ Type = Bool()
