// Package lookup serves the business-type and industry suggestion lists.
package lookup

import (
	"context"
	"strings"
)

// Named is an option shown by its display label.
type Named interface {
	Label() string
}

// Lister loads a full option list.
type Lister[T Named] interface {
	List(ctx context.Context) ([]T, error)
}

// ListFunc adapts a function to Lister.
type ListFunc[T Named] func(ctx context.Context) ([]T, error)

func (f ListFunc[T]) List(ctx context.Context) ([]T, error) {
	return f(ctx)
}

// Filter keeps options whose label contains query, ignoring case and
// surrounding whitespace. An empty query keeps everything.
func Filter[T Named](options []T, query string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return options
	}

	out := make([]T, 0, len(options))
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Label()), q) {
			out = append(out, opt)
		}
	}
	return out
}
