package authoring

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"educa-app/internal/domain/content"
)

var (
	// ErrNotFound covers both missing rows and rows owned by someone else.
	ErrNotFound    = errors.New("not found")
	ErrInvalidType = content.ErrInvalidType
)

// ValidationError reports field errors; nothing was written.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}
