package errcode

import "errors"

// Status is the numeric result of a device operation.
// It is an int newtype, comparable, allocation-free, and implements error.
// Zero is success; every failure is negative.
type Status int

func (s Status) Error() string {
	switch s {
	case OK:
		return "ok"
	case Fail:
		return "fail"
	case BufferFull:
		return "buffer_full"
	case BufferEmpty:
		return "buffer_empty"
	case Unsupported:
		return "unsupported"
	case UnknownPin:
		return "unknown_pin"
	case UnknownChip:
		return "unknown_chip"
	case Exhausted:
		return "exhausted"
	case InvalidParams:
		return "invalid_params"
	default:
		return "error"
	}
}

// Canonical statuses. The first four are part of the device protocol; the
// rest refine Fail and collapse to it through Code.
const (
	OK          Status = 0
	Fail        Status = -1
	BufferFull  Status = -2
	BufferEmpty Status = -3

	Unsupported   Status = -16
	UnknownPin    Status = -17
	UnknownChip   Status = -18
	Exhausted     Status = -19
	InvalidParams Status = -20
)

// Code returns the protocol status for s: refined failures report Fail.
func (s Status) Code() int {
	switch s {
	case OK, Fail, BufferFull, BufferEmpty:
		return int(s)
	default:
		return int(Fail)
	}
}

// Optional wrapper when we want to keep context and a cause.
type E struct {
	S   Status
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := e.S.Error()
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil && !errors.Is(e.Err, e.S) {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }

// Is lets errors.Is match the wrapped status directly.
func (e *E) Is(target error) bool {
	s, ok := target.(Status)
	return ok && s == e.S
}

// Wrap attaches op context to err. A nil err stays nil.
func Wrap(op string, s Status, err error) error {
	if err == nil {
		return nil
	}
	return &E{S: s, Op: op, Err: err}
}

// New builds a contextual error for s.
func New(op string, s Status, msg string) error {
	return &E{S: s, Op: op, Msg: msg}
}

// Of extracts a Status from an error, defaulting to Fail.
func Of(err error) Status {
	if err == nil {
		return OK
	}
	var e *E
	if errors.As(err, &e) {
		return e.S
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return Fail
}

// StatusOf maps any error onto the protocol codes 0, -1, -2 and -3.
func StatusOf(err error) int {
	return Of(err).Code()
}
