package report

// InternalError is the single opaque failure surfaced by the engine. It
// carries a human-readable message only; the underlying cause is logged
// by the engine and never exposed to callers.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return e.Message
}
