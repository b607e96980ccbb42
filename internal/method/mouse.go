package method

import (
	"context"

	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

func (m *Method) FindBySelectorAndClick(ctx context.Context, selector string) error {
	log.Debugf("Attempting to find and click element with selector: %s", selector)
	err := m.page.Run(ctx, m.implicitWait,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	)
	if err != nil {
		return m.elementError("clicking", selector, err)
	}
	log.Debugf("Successfully clicked element '%s'.", selector)
	return nil
}
