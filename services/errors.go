package services

import (
	"errors"
	"fmt"
)

// ErrItemNotFound reports a referenced user or catalog item that does not
// exist.
var ErrItemNotFound = errors.New("item not found")

// DatabaseError wraps any persistence failure inside the gamification engine.
// The orchestrator surfaces it unchanged; callers treat it as all-or-nothing
// since the enclosing transaction has already rolled back.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("gamification: %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func dbErr(op string, err error) error {
	return &DatabaseError{Op: op, Err: err}
}
