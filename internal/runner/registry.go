package runner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/luispater/anySteps/internal/interactions"
	"github.com/luispater/anySteps/internal/report"
	"github.com/luispater/anySteps/internal/steps"
)

var ErrConfiguration = errors.New("scenario configuration error")

var sleepStep = steps.Definition{Name: "sleep", Description: "Wait {0} ms"}

type Handler func(ctx context.Context, params []string) error

type action struct {
	definition steps.Definition
	params     int
	handler    Handler
}

// Registry maps scenario action names to step actions.
type Registry struct {
	actions  map[string]action
	reporter report.Reporter
}

func NewRegistry(session interactions.Session, reporter report.Reporter) *Registry {
	r := &Registry{
		actions:  make(map[string]action),
		reporter: reporter,
	}

	navigate := steps.NewNavigateActions(session, reporter)
	search := steps.NewSearchActions(session, reporter)
	asserts := steps.NewAssertActions(session, reporter)

	r.Register("navigate-home", steps.NavigateHome, 0, func(ctx context.Context, _ []string) error {
		return navigate.ToTheDuckDuckGoSearchPage(ctx)
	})
	r.Register("search", steps.SearchByKeyword, 1, func(ctx context.Context, params []string) error {
		return search.ByKeyword(ctx, params[0])
	})
	r.Register("expect-url", steps.ExpectURL, 1, func(ctx context.Context, params []string) error {
		return asserts.URLMatches(ctx, params[0])
	})
	r.Register("expect-value", steps.ExpectValue, 2, func(ctx context.Context, params []string) error {
		return asserts.ValueEquals(ctx, params[0], params[1])
	})
	r.Register("sleep", sleepStep, 1, func(ctx context.Context, params []string) error {
		return steps.Run(ctx, reporter, sleepStep, params, func(ctx context.Context) error {
			return sleep(ctx, params[0])
		})
	})
	return r
}

// Register adds or replaces an action. The handler is responsible for
// reporting itself, normally through steps.Run.
func (r *Registry) Register(name string, definition steps.Definition, params int, handler Handler) {
	r.actions[name] = action{definition: definition, params: params, handler: handler}
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns the step definition of name. Unknown actions get a
// definition named after the action itself.
func (r *Registry) Definition(name string) steps.Definition {
	if a, ok := r.actions[name]; ok {
		return a.definition
	}
	return steps.Definition{Name: name, Description: name}
}

// Execute runs one action. Unknown actions and wrong parameter counts are
// reported as failed steps.
func (r *Registry) Execute(ctx context.Context, name string, params []string) error {
	a, ok := r.actions[name]
	if !ok {
		return r.fail(ctx, name, params, fmt.Errorf("%w: action '%s' not found", ErrConfiguration, name))
	}
	if len(params) != a.params {
		return r.fail(ctx, name, params, fmt.Errorf("%w: action '%s' takes %d parameters, got %d", ErrConfiguration, name, a.params, len(params)))
	}
	return a.handler(ctx, params)
}

func (r *Registry) fail(ctx context.Context, name string, params []string, err error) error {
	return steps.Run(ctx, r.reporter, r.Definition(name), params, func(context.Context) error {
		return err
	})
}

func sleep(ctx context.Context, param string) error {
	milliseconds, err := strconv.Atoi(param)
	if err != nil || milliseconds < 0 {
		return fmt.Errorf("%w: sleep takes a non-negative number of milliseconds, got %q", ErrConfiguration, param)
	}
	timer := time.NewTimer(time.Duration(milliseconds) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
