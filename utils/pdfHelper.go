package utils

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"github.com/payinvoflow/billing_backend/config"
)

// A4 with fixed 10mm top/bottom margins, in inches as CDP expects.
const (
	pdfPaperWidthInches  = 8.27
	pdfPaperHeightInches = 11.69
	pdfMarginInches      = 0.394

	pdfRenderTimeout = 30 * time.Second

	renderLockKey = "lock:pdf-render"
	renderLockTTL = 30 * time.Second
)

// Each render spins a full Chromium process, so in-flight renders are
// bounded by a slot channel sized from config. Slots are checked out per
// request and returned on every exit path; a page context is never shared
// between concurrent renders.
var (
	renderSlotsOnce sync.Once
	renderSlots     chan struct{}
)

func acquireRenderSlot(ctx context.Context) (func(), error) {
	renderSlotsOnce.Do(func() {
		renderSlots = make(chan struct{}, config.RenderSlots())
	})
	select {
	case renderSlots <- struct{}{}:
		return func() { <-renderSlots }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// acquireRenderLock additionally serializes rendering across replicas.
// Redis here is a best-effort optimization: if the lock cannot be obtained
// the render proceeds anyway, bounded by the local slots.
func acquireRenderLock(ctx context.Context) *redislock.Lock {
	logger := config.GetLogger()
	redisLock := config.GetRedisLock()
	if redisLock == nil {
		return nil
	}
	lock, err := redisLock.Obtain(ctx, renderLockKey, renderLockTTL, nil)
	if err == redislock.ErrNotObtained {
		logger.WithFields(logrus.Fields{
			"field": "GeneratePDF",
		}).Warn("could not obtain pdf render lock; proceeding without redis lock")
		return nil
	} else if err != nil {
		logger.WithFields(logrus.Fields{
			"field": "GeneratePDF",
		}).Warn("error obtaining pdf render lock; proceeding without redis lock: " + err.Error())
		return nil
	}
	return lock
}

// GeneratePDF prints a rendered invoice HTML document to a paginated PDF via
// headless Chromium. The browser instance is scoped to this call and released
// on every exit path.
func GeneratePDF(ctx context.Context, html string) ([]byte, error) {
	release, err := acquireRenderSlot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire render slot: %v", ErrorRender, err)
	}
	defer release()

	if lock := acquireRenderLock(ctx); lock != nil {
		defer func() {
			if releaseErr := lock.Release(context.Background()); releaseErr != nil {
				config.GetLogger().WithFields(logrus.Fields{
					"field": "GeneratePDF",
				}).Warn("failed to release pdf render lock: " + releaseErr.Error())
			}
		}()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if path := config.ChromiumPath(); path != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(path))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, pdfRenderTimeout)
	defer cancelTimeout()

	// A data URL settles as soon as the document loads: the template inlines
	// local logos as base64, so the capture never waits on the network.
	dataURL := "data:text/html," + url.PathEscape(html)

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, perr := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(pdfPaperWidthInches).
				WithPaperHeight(pdfPaperHeightInches).
				WithMarginTop(pdfMarginInches).
				WithMarginBottom(pdfMarginInches).
				Do(ctx)
			if perr == nil {
				pdfBuf = buf
			}
			return perr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: chromedp run: %v", ErrorRender, err)
	}
	if len(pdfBuf) == 0 {
		return nil, fmt.Errorf("%w: empty pdf buffer", ErrorRender)
	}
	return pdfBuf, nil
}
