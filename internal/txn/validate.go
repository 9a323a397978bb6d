package txn

import (
	"errors"
	"fmt"
)

// ErrMalformedInput reports a transaction that breaks a structural invariant.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError describes which transaction is malformed and why.
type MalformedInputError struct {
	Method string
	URI    string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := fmt.Sprintf("%s: %s %s: %s", ErrMalformedInput, e.Method, e.URI, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }

func (e *MalformedInputError) Unwrap() error { return e.Err }

// Malformed builds a MalformedInputError for t.
func Malformed(t *Transaction, reason string, err error) *MalformedInputError {
	e := &MalformedInputError{Reason: reason, Err: err}
	if t != nil {
		e.Method, e.URI = t.Method, t.URI
	}
	return e
}

// CheckTimestamps verifies ReqTS <= ResTS <= ResDoneTS.
func (t *Transaction) CheckTimestamps() error {
	if t.ResTS.Before(t.ReqTS) {
		return Malformed(t, fmt.Sprintf("response headers at %s precede request at %s",
			t.ResTS.UTC().Format("15:04:05.000000"), t.ReqTS.UTC().Format("15:04:05.000000")), nil)
	}
	if t.ResDoneTS.Before(t.ResTS) {
		return Malformed(t, fmt.Sprintf("response completed at %s before headers at %s",
			t.ResDoneTS.UTC().Format("15:04:05.000000"), t.ResTS.UTC().Format("15:04:05.000000")), nil)
	}
	return nil
}

// CheckLinks verifies that the direct links of t are present and do not
// lead back to t. Links of a linked transaction are inspected only for a
// reference back to t or to itself; they are never walked further.
func (t *Transaction) CheckLinks() error {
	for i, child := range t.Linked {
		if child == nil {
			return Malformed(t, fmt.Sprintf("linked transaction %d is nil", i), nil)
		}
		if child == t {
			return Malformed(t, fmt.Sprintf("linked transaction %d is the transaction itself", i), nil)
		}
		for _, grand := range child.Linked {
			if grand == t || grand == child {
				return Malformed(child, fmt.Sprintf("linked transaction %d links back to an ancestor", i), nil)
			}
		}
	}
	return nil
}
