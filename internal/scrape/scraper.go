package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"cv-optimizer-backend/internal/shared/telemetry"
)

const defaultRenderTimeout = 10 * time.Second

// Scraper renders a posting page in a headless browser and parses it into a
// VacancyRecord. The browser session lives for the duration of one Scrape
// call and is always torn down, success or failure.
type Scraper struct {
	renderTimeout time.Duration
	limiter       *rate.Limiter
	keywords      KeywordStrategy
	allocatorOpts []chromedp.ExecAllocatorOption
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithRenderTimeout bounds the wait for the page's top-level heading to
// become visible. It does not bound the whole network call.
func WithRenderTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.renderTimeout = d
		}
	}
}

// WithLimiter rate-limits Scrape calls for politeness.
func WithLimiter(l *rate.Limiter) Option {
	return func(s *Scraper) { s.limiter = l }
}

// WithKeywordStrategy swaps the keyword-extraction strategy.
func WithKeywordStrategy(k KeywordStrategy) Option {
	return func(s *Scraper) { s.keywords = k }
}

// New constructs a Scraper with headless defaults.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		renderTimeout: defaultRenderTimeout,
		keywords:      DefaultAllowList(),
		allocatorOpts: append(
			chromedp.DefaultExecAllocatorOptions[:],
			chromedp.NoSandbox,
			chromedp.DisableGPU,
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape navigates to url, waits for a visible h1 as the render signal, and
// parses the resulting markup. Any navigation or parse failure is logged and
// returned as an error with no partial record; the caller decides how to
// proceed.
func (s *Scraper) Scrape(ctx context.Context, url string) (*VacancyRecord, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("scrape %s: limiter: %w", url, err)
		}
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, s.allocatorOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	html, err := s.renderPage(browserCtx, url)
	if err != nil {
		telemetry.Warn("scrape.failed", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("scrape %s: %w", url, err)
	}

	record, err := parseVacancy(html, url, s.keywords)
	if err != nil {
		telemetry.Warn("scrape.parse_failed", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("scrape %s: %w", url, err)
	}

	telemetry.Info("scrape.complete", map[string]any{
		"url":     url,
		"title":   record.Title.String(),
		"company": record.Company.String(),
	})
	return record, nil
}

func (s *Scraper) renderPage(browserCtx context.Context, url string) (string, error) {
	if err := chromedp.Run(browserCtx, chromedp.Navigate(url)); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}

	// The render-wait is the only bounded step: the heading appearing is
	// the signal that the page finished rendering.
	waitCtx, cancelWait := context.WithTimeout(browserCtx, s.renderTimeout)
	defer cancelWait()
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(selectorTitle, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("wait for render: %w", err)
	}

	var html string
	if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("capture markup: %w", err)
	}
	return html, nil
}
