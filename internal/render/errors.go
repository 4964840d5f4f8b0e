package render

import "fmt"

// ErrorKind splits failures into local misuse and backend-reported request
// errors. The engine never retries either; the caller decides whether to
// abort or skip the frame.
type ErrorKind uint8

const (
	// KindLocal marks errors produced on our side of the connection.
	KindLocal ErrorKind = iota
	// KindBackend marks requests the display server rejected.
	KindBackend
)

func (k ErrorKind) String() string {
	if k == KindBackend {
		return "backend"
	}
	return "local"
}

// Error is a structured drawing failure.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// BackendError wraps a server-side rejection.
func BackendError(op string, err error) *Error {
	return &Error{Kind: KindBackend, Op: op, Err: err}
}

// LocalError wraps a failure on the client side of the connection.
func LocalError(op string, err error) *Error {
	return &Error{Kind: KindLocal, Op: op, Err: err}
}
