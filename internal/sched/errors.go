package sched

// unknownKindError signals a kind outside the closed effect set for 400 mapping.
type unknownKindError struct{ kind string }

func (e unknownKindError) Error() string { return "unknown animation kind: " + e.kind }

// ErrUnknownKind constructs an unknownKindError.
func ErrUnknownKind(kind string) error { return unknownKindError{kind: kind} }

// IsUnknownKind reports whether err indicates a kind the scheduler does not support.
func IsUnknownKind(err error) bool {
	_, ok := err.(unknownKindError)
	return ok
}

// closedError signals use after Close so the HTTP layer can return 503.
type closedError struct{}

func (closedError) Error() string { return "scheduler is closed" }

// ErrClosed constructs a closedError.
func ErrClosed() error { return closedError{} }

// IsClosed reports whether err indicates the scheduler has shut down.
func IsClosed(err error) bool {
	_, ok := err.(closedError)
	return ok
}

// emptyTargetError signals a request without a target for 400 mapping.
type emptyTargetError struct{}

func (emptyTargetError) Error() string { return "empty target id" }

// ErrEmptyTarget constructs an emptyTargetError.
func ErrEmptyTarget() error { return emptyTargetError{} }

// IsEmptyTarget reports whether err indicates a missing target id.
func IsEmptyTarget(err error) bool {
	_, ok := err.(emptyTargetError)
	return ok
}
