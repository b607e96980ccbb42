package steps

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/luispater/anySteps/internal/interactions"
	"github.com/luispater/anySteps/internal/interactions/fake"
	"github.com/luispater/anySteps/internal/mocks"
	"github.com/luispater/anySteps/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func homePage() map[string]map[string]string {
	return map[string]map[string]string{
		HomePageURL: {
			"#" + SearchInputID:  "",
			SearchButtonSelector: "",
		},
	}
}

func TestDefinitionTitle(t *testing.T) {
	assert.Equal(t, "Navigate to the home page", NavigateHome.Title())
	assert.Equal(t, "Search for 'kittens'", SearchByKeyword.Title("kittens"))
	assert.Equal(t, "Search for ''", SearchByKeyword.Title(""))
	assert.Equal(t, "Check '#q' has value 'x'", ExpectValue.Title("#q", "x"))
}

func TestNavigateToTheDuckDuckGoSearchPage(t *testing.T) {
	session := fake.NewSession(homePage())
	rec := report.NewRecorder("navigate")

	err := NewNavigateActions(session, rec).ToTheDuckDuckGoSearchPage(context.Background())
	require.NoError(t, err)

	location, err := session.Location(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://duckduckgo.com/", location)

	results := rec.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "Navigate to the home page", results[0].Title)
	assert.Equal(t, report.StatusPassed, results[0].Status)
}

func TestNavigateFailurePropagates(t *testing.T) {
	cause := errors.New("net::ERR_NAME_NOT_RESOLVED")
	ui := &mocks.MockSession{}
	ui.On("NavigateTo", mock.Anything, "https://duckduckgo.com/").
		Return(fmt.Errorf("%w: %s: %w", interactions.ErrNavigation, HomePageURL, cause)).Once()
	rec := report.NewRecorder("navigate")

	err := NewNavigateActions(ui, rec).ToTheDuckDuckGoSearchPage(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, interactions.ErrNavigation)
	assert.ErrorIs(t, err, cause)
	ui.AssertExpectations(t)
	assert.Equal(t, report.StatusFailed, rec.Results()[0].Status)
}

func TestSearchByKeyword(t *testing.T) {
	ui := &mocks.MockSession{}
	var inputValue, valueAtClick string
	typed := ui.On("FindByIDAndType", mock.Anything, "search_form_input_homepage", "kittens").
		Run(func(args mock.Arguments) { inputValue += args.String(2) }).
		Return(nil).Once()
	ui.On("FindBySelectorAndClick", mock.Anything, ".search__button").
		Run(func(mock.Arguments) { valueAtClick = inputValue }).
		Return(nil).Once().NotBefore(typed)
	rec := report.NewRecorder("search")

	require.NoError(t, NewSearchActions(ui, rec).ByKeyword(context.Background(), "kittens"))

	ui.AssertExpectations(t)
	assert.Equal(t, "kittens", valueAtClick)
	assert.Equal(t, "Search for 'kittens'", rec.Results()[0].Title)
}

func TestSearchByKeywordLeavesValueInInput(t *testing.T) {
	ctx := context.Background()
	session := fake.NewSession(homePage())
	require.NoError(t, session.NavigateTo(ctx, HomePageURL))

	require.NoError(t, NewSearchActions(session, nil).ByKeyword(ctx, "kittens"))
	value, err := session.Value(ctx, "#"+SearchInputID)
	require.NoError(t, err)
	assert.Equal(t, "kittens", value)
}

func TestSearchEmptyKeywordStillClicks(t *testing.T) {
	ui := &mocks.MockSession{}
	typed := ui.On("FindByIDAndType", mock.Anything, SearchInputID, "").Return(nil).Once()
	ui.On("FindBySelectorAndClick", mock.Anything, SearchButtonSelector).Return(nil).Once().NotBefore(typed)

	require.NoError(t, NewSearchActions(ui, nil).ByKeyword(context.Background(), ""))
	ui.AssertExpectations(t)
}

func TestSearchMissingInputFails(t *testing.T) {
	ui := &mocks.MockSession{}
	ui.On("FindByIDAndType", mock.Anything, SearchInputID, "kittens").
		Return(fmt.Errorf("%w: '#%s' on page %s", interactions.ErrElementNotFound, SearchInputID, HomePageURL)).Once()
	rec := report.NewRecorder("search")

	err := NewSearchActions(ui, rec).ByKeyword(context.Background(), "kittens")
	require.Error(t, err)
	assert.ErrorIs(t, err, interactions.ErrElementNotFound)
	ui.AssertExpectations(t)
	ui.AssertNotCalled(t, "FindBySelectorAndClick", mock.Anything, mock.Anything)

	results := rec.Results()
	require.Len(t, results, 1)
	assert.Equal(t, report.StatusFailed, results[0].Status)
	assert.Contains(t, results[0].Error, "search_form_input_homepage")
}

func TestSearchMissingInputFailsOnPage(t *testing.T) {
	ctx := context.Background()
	session := fake.NewSession(map[string]map[string]string{
		HomePageURL: {SearchButtonSelector: ""},
	})
	require.NoError(t, session.NavigateTo(ctx, HomePageURL))

	err := NewSearchActions(session, nil).ByKeyword(ctx, "kittens")
	assert.ErrorIs(t, err, interactions.ErrElementNotFound)
}

func TestStepsReportThroughReporter(t *testing.T) {
	rep := &mocks.MockReporter{}
	started := rep.On("StepStarted", mock.MatchedBy(func(ev report.StepEvent) bool {
		return ev.Name == "navigate" && ev.Title == "Navigate to the home page"
	})).Return().Once()
	rep.On("StepFinished", mock.MatchedBy(func(ev report.StepEvent) bool {
		return ev.Name == "navigate" && ev.Status == report.StatusPassed && ev.Err == nil
	})).Return().Once().NotBefore(started)

	session := fake.NewSession(homePage())
	require.NoError(t, NewNavigateActions(session, rep).ToTheDuckDuckGoSearchPage(context.Background()))
	rep.AssertExpectations(t)
}

func TestSearchMissingButtonFails(t *testing.T) {
	ctx := context.Background()
	session := fake.NewSession(map[string]map[string]string{
		HomePageURL: {"#" + SearchInputID: ""},
	})
	require.NoError(t, session.NavigateTo(ctx, HomePageURL))

	err := NewSearchActions(session, nil).ByKeyword(ctx, "kittens")
	assert.ErrorIs(t, err, interactions.ErrElementNotFound)
	assert.Contains(t, err.Error(), ".search__button")
}

func TestAssertActions(t *testing.T) {
	ctx := context.Background()
	session := fake.NewSession(homePage())
	require.NoError(t, session.NavigateTo(ctx, HomePageURL))
	require.NoError(t, session.FindByIDAndType(ctx, SearchInputID, "kittens"))
	asserts := NewAssertActions(session, nil)

	assert.NoError(t, asserts.URLMatches(ctx, "https://duckduckgo.com/"))
	assert.NoError(t, asserts.URLMatches(ctx, "https://duckduckgo.com/*"))
	assert.ErrorIs(t, asserts.URLMatches(ctx, "https://example.com/"), ErrAssertion)

	assert.NoError(t, asserts.ValueEquals(ctx, "#"+SearchInputID, "kittens"))
	assert.ErrorIs(t, asserts.ValueEquals(ctx, "#"+SearchInputID, "puppies"), ErrAssertion)
	assert.ErrorIs(t, asserts.ValueEquals(ctx, "#missing", ""), interactions.ErrElementNotFound)
}
