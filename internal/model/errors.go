package model

import "fmt"

// DataAccessError classifies an infrastructure failure (storage, input file
// or export sink). Err keeps the original cause.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}
