package ledger

import "errors"

var (
	// ErrEmptyName is returned when a project name is empty after trimming.
	ErrEmptyName = errors.New("ledger: project name must not be empty")
	// ErrInvalidRate is returned when an hourly rate is zero or negative.
	ErrInvalidRate = errors.New("ledger: hourly rate must be greater than zero")
	// ErrDuplicateName is returned by ValidateName when another project
	// already uses the name (case-insensitive).
	ErrDuplicateName = errors.New("ledger: a project with this name already exists")
)
