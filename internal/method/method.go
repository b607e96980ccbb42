// Package method implements interactions.Session on top of a chromedp page.
package method

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/luispater/anySteps/internal/interactions"
)

// Page is the part of chrome.Page the methods need.
type Page interface {
	Run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error
	CurrentURL() string
}

type Method struct {
	page         Page
	implicitWait time.Duration
}

// NewMethod binds the methods to page. Element lookups give up after implicitWait.
func NewMethod(page Page, implicitWait time.Duration) *Method {
	return &Method{
		page:         page,
		implicitWait: implicitWait,
	}
}

// elementError classifies a failed lookup. An expired wait means the element
// never showed up.
func (m *Method) elementError(action, selector string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: '%s' on page %s: %w", interactions.ErrElementNotFound, selector, m.page.CurrentURL(), err)
	}
	return fmt.Errorf("error %s element '%s' on page %s: %w", action, selector, m.page.CurrentURL(), err)
}

var _ interactions.Session = (*Method)(nil)
