// Package fake provides an in-memory interactions.Session for tests. It keeps
// page state only; use mocks.MockSession to check calls.
package fake

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/luispater/anySteps/internal/interactions"
)

// Session simulates a single browser tab. Pages maps a URL to the elements
// (selector -> value) present once that URL is loaded.
type Session struct {
	mu          sync.Mutex
	url         string
	elements    map[string]string
	Pages       map[string]map[string]string
	NavigateErr error
}

func NewSession(pages map[string]map[string]string) *Session {
	return &Session{
		Pages:    pages,
		elements: make(map[string]string),
	}
}

func (s *Session) NavigateTo(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", interactions.ErrNavigation, url, err)
	}
	if s.NavigateErr != nil {
		return fmt.Errorf("%w: %s: %w", interactions.ErrNavigation, url, s.NavigateErr)
	}
	s.url = url
	s.elements = maps.Clone(s.Pages[url])
	if s.elements == nil {
		s.elements = make(map[string]string)
	}
	return nil
}

func (s *Session) FindByIDAndType(ctx context.Context, id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	selector := "#" + strings.TrimPrefix(id, "#")
	value, ok := s.elements[selector]
	if !ok || ctx.Err() != nil {
		return fmt.Errorf("%w: '%s' on page %s", interactions.ErrElementNotFound, selector, s.url)
	}
	s.elements[selector] = value + text
	return nil
}

func (s *Session) FindBySelectorAndClick(ctx context.Context, selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elements[selector]; !ok || ctx.Err() != nil {
		return fmt.Errorf("%w: '%s' on page %s", interactions.ErrElementNotFound, selector, s.url)
	}
	return nil
}

func (s *Session) Location(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url, nil
}

func (s *Session) Value(_ context.Context, selector string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.elements[selector]
	if !ok {
		return "", fmt.Errorf("%w: '%s' on page %s", interactions.ErrElementNotFound, selector, s.url)
	}
	return value, nil
}

var _ interactions.Session = (*Session)(nil)
