package authz

// Scope distinguishes the two target variants: a resource kind as a
// whole (table-level) or one concrete instance (row-level).
type Scope int

const (
	ScopeUnknown Scope = iota
	ScopeClass
	ScopeInstance
)

// String returns the scope name used in diagnostics.
func (s Scope) String() string {
	switch s {
	case ScopeClass:
		return "class"
	case ScopeInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Context carries caller-supplied parameters that a capability check
// may consult. Unknown keys are ignored, never an error.
type Context map[string]any

// String returns the value for key when it is a string.
func (c Context) String(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok
}

// Int64 returns the value for key when it is an integer. JSON-decoded
// contexts carry numbers as float64; whole values convert.
func (c Context) Int64(key string) (int64, bool) {
	switch v := c[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Bool returns the value for key when it is a bool.
func (c Context) Bool(key string) (bool, bool) {
	v, ok := c[key].(bool)
	return v, ok
}

// Target identifies what a permission is checked against. Exactly one
// variant is active per request; the resolver branches on Scope.
type Target struct {
	Scope      Scope
	Kind       string
	InstanceID string
	Context    Context
}

// ClassTarget builds a table-level target for the named resource kind.
func ClassTarget(kind string, ctx Context) *Target {
	return &Target{Scope: ScopeClass, Kind: kind, Context: ctx}
}

// InstanceTarget builds a row-level target for one concrete resource.
func InstanceTarget(kind, instanceID string, ctx Context) *Target {
	return &Target{Scope: ScopeInstance, Kind: kind, InstanceID: instanceID, Context: ctx}
}
