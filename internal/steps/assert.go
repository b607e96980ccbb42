package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/luispater/anySteps/internal/interactions"
	"github.com/luispater/anySteps/internal/report"
	"github.com/luispater/anySteps/internal/utils"
)

var ErrAssertion = errors.New("assertion failed")

var (
	ExpectURL   = Definition{Name: "expect-url", Description: "Check the page URL matches '{0}'"}
	ExpectValue = Definition{Name: "expect-value", Description: "Check '{0}' has value '{1}'"}
)

type AssertActions struct {
	inspector interactions.Inspector
	reporter  report.Reporter
}

func NewAssertActions(inspector interactions.Inspector, reporter report.Reporter) *AssertActions {
	return &AssertActions{inspector: inspector, reporter: reporter}
}

// URLMatches checks the current location against pattern. The pattern matches
// exactly or, for the same scheme and host, as a path.Match glob on the path.
func (a *AssertActions) URLMatches(ctx context.Context, pattern string) error {
	return Run(ctx, a.reporter, ExpectURL, []string{pattern}, func(ctx context.Context) error {
		location, err := a.inspector.Location(ctx)
		if err != nil {
			return err
		}
		if !utils.MatchUrl([]string{pattern}, location) {
			return fmt.Errorf("%w: url %s does not match %s", ErrAssertion, location, pattern)
		}
		return nil
	})
}

func (a *AssertActions) ValueEquals(ctx context.Context, selector, expected string) error {
	return Run(ctx, a.reporter, ExpectValue, []string{selector, expected}, func(ctx context.Context) error {
		value, err := a.inspector.Value(ctx, selector)
		if err != nil {
			return err
		}
		if value != expected {
			return fmt.Errorf("%w: element '%s' has value %q, want %q", ErrAssertion, selector, value, expected)
		}
		return nil
	})
}
