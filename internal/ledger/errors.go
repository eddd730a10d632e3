package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrRowOutOfRange reports an index outside the draft's line rows.
	// It signals a caller bug, not user input to be surfaced.
	ErrRowOutOfRange = errors.New("ledger: line row index out of range")

	// ErrUnknownField reports an Update against a field the draft rows
	// do not have.
	ErrUnknownField = errors.New("ledger: unknown line row field")

	// ErrNotFound is returned when the data service has no sale with
	// the requested id.
	ErrNotFound = errors.New("ledger: sale not found")
)

// ValidationError describes one violated submission rule. Row is the
// 1-based line row for row-level rules and zero for sale-level rules.
type ValidationError struct {
	Row     int    `json:"row,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, e.Message)
	}
	return e.Message
}

// StatusCoder is implemented by transport errors that carry an HTTP
// status from the data service. The engine never inspects the code; it
// only passes such failures through untouched.
type StatusCoder interface {
	StatusCode() int
}
