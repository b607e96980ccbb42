package method

import (
	"context"
	"strings"

	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

// FindByIDAndType sends text as keystrokes to the element with the given id.
func (m *Method) FindByIDAndType(ctx context.Context, id, text string) error {
	selector := "#" + strings.TrimPrefix(id, "#")
	log.Debugf("Attempting to type into element '%s'...", selector)
	err := m.page.Run(ctx, m.implicitWait,
		chromedp.WaitVisible(selector, chromedp.ByID),
		chromedp.SendKeys(selector, text, chromedp.ByID),
	)
	if err != nil {
		return m.elementError("typing into", selector, err)
	}
	log.Debugf("Successfully typed into element '%s'.", selector)
	return nil
}
