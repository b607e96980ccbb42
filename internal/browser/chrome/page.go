package chrome

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

// Page is one browser tab.
type Page struct {
	ctx      context.Context
	cancel   context.CancelFunc
	targetID target.ID
}

func NewPage(browserCtx context.Context) (*Page, error) {
	if browserCtx == nil {
		return nil, fmt.Errorf("browser context not initialized. Call LaunchBrowserAndContext first")
	}

	var newTargetID target.ID
	err := chromedp.Run(
		browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			newTargetID, err = target.CreateTarget("about:blank").Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create new target (tab): %w", err)
	}

	newPageCtx, newPageCancel := chromedp.NewContext(browserCtx, chromedp.WithTargetID(newTargetID))
	if err = chromedp.Run(newPageCtx); err != nil {
		newPageCancel()
		return nil, fmt.Errorf("failed to attach to target %s: %w", newTargetID, err)
	}

	log.Debugf("New Chromedp page (targetID: %s) created.", newTargetID)

	return &Page{
		ctx:      newPageCtx,
		cancel:   newPageCancel,
		targetID: newTargetID,
	}, nil
}

// Run executes actions on the tab. The run ends when ctx is done or, when
// timeout is positive, after timeout elapses. If ctx ended the run, the
// returned error wraps ctx.Err().
func (p *Page) Run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		runCtx, cancelTimeout = context.WithTimeout(runCtx, timeout)
		defer cancelTimeout()
	}
	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
		return fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return err
}

// CurrentURL is a best-effort lookup for error messages.
func (p *Page) CurrentURL() string {
	var currentURL string
	ctx, cancel := context.WithTimeout(p.ctx, 2*time.Second)
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.Location(&currentURL)); err != nil {
		return "unknown"
	}
	return currentURL
}

// Screenshot captures the visible viewport as PNG.
func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := p.Run(ctx, 0, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return buf, nil
}

func (p *Page) Close() {
	p.cancel()
}
