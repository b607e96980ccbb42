// Package interactions defines the browser primitives that step actions build on.
package interactions

import (
	"context"
	"errors"
)

var (
	// ErrElementNotFound is returned when an element cannot be located within the implicit wait.
	ErrElementNotFound = errors.New("element not found")
	// ErrNavigation is returned when the session cannot load a URL.
	ErrNavigation = errors.New("navigation failed")
)

// UIInteractions is the capability set used by step actions.
type UIInteractions interface {
	NavigateTo(ctx context.Context, url string) error
	FindByIDAndType(ctx context.Context, id, text string) error
	FindBySelectorAndClick(ctx context.Context, selector string) error
}

// Inspector reads page state back. Assertion steps use it.
type Inspector interface {
	Location(ctx context.Context) (string, error)
	Value(ctx context.Context, selector string) (string, error)
}

// Session is a UI session that can both act and be inspected.
type Session interface {
	UIInteractions
	Inspector
}
