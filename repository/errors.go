package repository

import (
	"errors"
	"fmt"
)

// ErrNewsNotFound is returned by FindByID when no row matches.
var ErrNewsNotFound = errors.New("news not found")

// ErrInvalidNews is returned by Create when required fields are blank.
var ErrInvalidNews = errors.New("news title and content are required")

// DataAccessError reports a failed read or write against the news store:
// unreachable database, failed query, timeout or cancelled context.
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

// IsDataAccess reports whether err is, or wraps, a DataAccessError.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}
