package models

// Result holds either a value or an error from a user flow.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the flow succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}
