package domain

// Relation tracks whether an optional association has been loaded. The zero
// value is unresolved, so a freshly unmarshalled record carries no relations
// until the caller attaches them. Presenters must treat unresolved and
// resolved-to-nil identically: the field is absent.
type Relation[T any] struct {
	value    *T
	resolved bool
}

// Resolved marks the relation as loaded with the given value.
func Resolved[T any](v *T) Relation[T] {
	return Relation[T]{value: v, resolved: true}
}

// Value returns the loaded value. The second return is false when the
// relation was never resolved or resolved to nothing.
func (r Relation[T]) Value() (*T, bool) {
	if !r.resolved || r.value == nil {
		return nil, false
	}
	return r.value, true
}
