package browser

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/maltedev/amazon-product-scraper/internal/session"
)

// Options control navigation behavior; identity comes from the session.
type Options struct {
	Headless          bool
	NavigationTimeout time.Duration
	TitleWaitTimeout  time.Duration
}

func DefaultOptions() *Options {
	return &Options{
		Headless:          true,
		NavigationTimeout: 30 * time.Second,
		TitleWaitTimeout:  15 * time.Second,
	}
}

// Browser owns one playwright instance, browser and context. A Browser is
// scoped to a single scrape attempt and must be closed on every exit path.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	opts    *Options
	stealth string
	logger  *slog.Logger
}

// New launches a hardened chromium session using the identity carried by
// sess.
func New(sess *session.Session, opts *Options, logger *slog.Logger) (*Browser, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
		Args:     sess.LaunchArgs,
	}

	b, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		UserAgent: &sess.UserAgent,
		Viewport: &playwright.Size{
			Width:  sess.ViewportWidth,
			Height: sess.ViewportHeight,
		},
		ExtraHttpHeaders: sess.Headers,
	}

	context, err := b.NewContext(contextOpts)
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	return &Browser{
		pw:      pw,
		browser: b,
		context: context,
		opts:    opts,
		stealth: sess.StealthScript,
		logger:  logger.With("component", "browser"),
	}, nil
}

// NewPage opens a page with the stealth overrides registered before any
// site script runs.
func (b *Browser) NewPage() (playwright.Page, error) {
	page, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create new page: %w", err)
	}

	if err := page.AddInitScript(playwright.Script{Content: &b.stealth}); err != nil {
		page.Close()
		return nil, fmt.Errorf("failed to register init script: %w", err)
	}

	page.SetDefaultTimeout(float64(b.opts.NavigationTimeout.Milliseconds()))

	return page, nil
}

// LoadProductPage navigates to url and waits for the product title anchor.
// If the anchor never appears the page is considered not loaded and the
// error propagates to the caller's retry decision.
func (b *Browser) LoadProductPage(page playwright.Page, url string) error {
	_, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(b.opts.NavigationTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	_, err = page.WaitForSelector("#productTitle", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(b.opts.TitleWaitTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("page did not reach loaded state: %w", err)
	}

	return nil
}

func (b *Browser) Close() error {
	var errs []error

	if b.context != nil {
		if err := b.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
	}

	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}

	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}

	return nil
}
