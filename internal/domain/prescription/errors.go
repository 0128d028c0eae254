package prescription

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConflict is returned when the atomic commit lost a race against another
// writer. The caller decides whether to re-read and resubmit; the workflow
// never retries on its own.
var ErrConflict = errors.New("concurrency conflict while saving the prescription")

// ValidationError carries the field-keyed messages produced by
// CreateRequest.Validate.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// MedicamentsNotFoundError enumerates every requested medicament id absent
// from the catalog, in first-seen request order.
type MedicamentsNotFoundError struct {
	IDs []int64
}

func (e *MedicamentsNotFoundError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("medicament(s) not found: %s", strings.Join(parts, ", "))
}
