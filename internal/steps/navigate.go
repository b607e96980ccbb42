package steps

import (
	"context"

	"github.com/luispater/anySteps/internal/interactions"
	"github.com/luispater/anySteps/internal/report"
)

const HomePageURL = "https://duckduckgo.com/"

var NavigateHome = Definition{Name: "navigate", Description: "Navigate to the home page"}

type NavigateActions struct {
	ui       interactions.UIInteractions
	reporter report.Reporter
}

func NewNavigateActions(ui interactions.UIInteractions, reporter report.Reporter) *NavigateActions {
	return &NavigateActions{ui: ui, reporter: reporter}
}

// ToTheDuckDuckGoSearchPage opens the search home page.
func (a *NavigateActions) ToTheDuckDuckGoSearchPage(ctx context.Context) error {
	return Run(ctx, a.reporter, NavigateHome, nil, func(ctx context.Context) error {
		return a.ui.NavigateTo(ctx, HomePageURL)
	})
}
