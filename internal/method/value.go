package method

import (
	"context"

	"github.com/chromedp/chromedp"
)

func (m *Method) Value(ctx context.Context, selector string) (string, error) {
	var value string
	err := m.page.Run(ctx, m.implicitWait,
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.Value(selector, &value, chromedp.ByQuery),
	)
	if err != nil {
		return "", m.elementError("reading value of", selector, err)
	}
	return value, nil
}
