package method

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/luispater/anySteps/internal/interactions"
	log "github.com/sirupsen/logrus"
)

func (m *Method) NavigateTo(ctx context.Context, url string) error {
	log.Debugf("Navigating to: %s", url)
	if err := m.page.Run(ctx, m.implicitWait, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("%w: %s: %w", interactions.ErrNavigation, url, err)
	}
	log.Debugf("Successfully navigated to: %s", url)
	return nil
}

func (m *Method) Location(ctx context.Context) (string, error) {
	var currentURL string
	if err := m.page.Run(ctx, m.implicitWait, chromedp.Location(&currentURL)); err != nil {
		return "", fmt.Errorf("error getting page location: %w", err)
	}
	return currentURL, nil
}
