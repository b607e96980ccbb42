package steps

import (
	"context"

	"github.com/luispater/anySteps/internal/interactions"
	"github.com/luispater/anySteps/internal/report"
)

const (
	SearchInputID        = "search_form_input_homepage"
	SearchButtonSelector = ".search__button"
)

var SearchByKeyword = Definition{Name: "search", Description: "Search for '{0}'"}

type SearchActions struct {
	ui       interactions.UIInteractions
	reporter report.Reporter
}

func NewSearchActions(ui interactions.UIInteractions, reporter report.Reporter) *SearchActions {
	return &SearchActions{ui: ui, reporter: reporter}
}

// ByKeyword types keyword into the search box and submits it.
// The keyword is not validated; an empty string still submits.
func (a *SearchActions) ByKeyword(ctx context.Context, keyword string) error {
	return Run(ctx, a.reporter, SearchByKeyword, []string{keyword}, func(ctx context.Context) error {
		if err := a.ui.FindByIDAndType(ctx, SearchInputID, keyword); err != nil {
			return err
		}
		return a.ui.FindBySelectorAndClick(ctx, SearchButtonSelector)
	})
}
