package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

// PageLoader renders URLs through a playwright page and hands the
// result back as a content tree. Everything downstream of this type
// works on the tree alone, so the rest of the pipeline never touches
// the browser.
type PageLoader struct {
	page    playwright.Page
	settle  time.Duration
	timeout time.Duration
	shots   *ScreenshotDebugger
}

func NewPageLoader(page playwright.Page) *PageLoader {
	return &PageLoader{
		page:    page,
		settle:  3 * time.Second,
		timeout: 30 * time.Second,
		shots:   NewScreenshotDebugger(),
	}
}

func (l *PageLoader) Load(ctx context.Context, url string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := l.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(l.timeout.Milliseconds())),
	}); err != nil {
		return nil, fmt.Errorf("goto %s: %w", url, err)
	}

	// block / challenge check before anything is extracted
	if title, _ := l.page.Title(); isBlockTitle(title) {
		l.shots.CaptureAndLog(l.page, "blocked", fmt.Sprintf("🚨 Block page at %s (title %q)", url, title))
		return nil, fmt.Errorf("blocked while loading %s", url)
	}

	l.page.WaitForTimeout(float64(l.settle.Milliseconds()))
	MouseJiggle(l.page)
	SmoothScroll(l.page)
	RandomDelay(300, 800)

	html, err := l.page.Content()
	if err != nil {
		return nil, fmt.Errorf("page content of %s: %w", url, err)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func isBlockTitle(title string) bool {
	for _, marker := range []string{"403", "Just a moment", "Attention Required", "Cloudflare"} {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}
