package olx

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
)

const siteBase = "https://www.olx.pl"

// offerHref is the path fragment that identifies an offer link. Offers
// are recognized by their href shape, not by markup classes, which
// survives the site's styling churn.
const offerHref = "/oferta/praca/"

// ErrNoResults marks a listing page whose results cannot be located at
// all. That usually means the site layout changed and the strategies
// need updating, so it is fatal to the run.
var ErrNoResults = errors.New("olx: no offers found on listing page")

// Loader fetches a URL and returns its rendered content tree.
// Production runs put a playwright page behind this; tests use static
// fixtures.
type Loader interface {
	Load(ctx context.Context, url string) (*goquery.Document, error)
}

type WalkConfig struct {
	StartURL    string
	MinDelay    time.Duration // pause between consecutive navigations
	MaxItems    int           // hard cap on visited offers, 0 = unbounded
	MaxPages    int           // hard cap on listing pages
	ItemRetries int           // retries per offer before it is skipped
}

// Walker enumerates offer pages from the paginated listing view. It
// holds no cursor between runs; restarting means re-invoking with the
// same parameters.
type Walker struct {
	loader Loader
	cfg    WalkConfig

	// Skip, when set, suppresses offers already collected in earlier
	// runs (cross-run dedup is the caller's concern).
	Skip func(url string) bool

	sleep func(time.Duration)
	moved bool
}

func NewWalker(loader Loader, cfg WalkConfig) *Walker {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 25
	}
	if cfg.ItemRetries <= 0 {
		cfg.ItemRetries = 2
	}
	return &Walker{loader: loader, cfg: cfg, sleep: time.Sleep}
}

// Walk visits listing pages and every new offer they link to, calling
// visit with each offer's rendered document. Offer-level failures are
// logged and skipped. A listing page that cannot be loaded, or a first
// page with no recognizable results, ends the walk with an error.
func (w *Walker) Walk(ctx context.Context, visit func(url string, doc *goquery.Document) error) error {
	seen := mapset.NewSet[string]()
	visited := 0

	for pageNum := 1; pageNum <= w.cfg.MaxPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		pageURL := listingURL(w.cfg.StartURL, pageNum)
		log.Printf("📄 Page %d/%d: %s", pageNum, w.cfg.MaxPages, pageURL)

		w.pace()
		doc, err := w.loader.Load(ctx, pageURL)
		if err != nil {
			return fmt.Errorf("load listing page %d: %w", pageNum, err)
		}

		links := OfferLinks(doc)
		if len(links) == 0 {
			if pageNum == 1 {
				return ErrNoResults
			}
			log.Printf("📄 Page %d: no more offers - stopping", pageNum)
			return nil
		}

		fresh := 0
		for _, link := range links {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !seen.Add(link) {
				continue
			}
			if w.Skip != nil && w.Skip(link) {
				log.Printf("  ⏭️ Already collected: %s", link)
				continue
			}
			fresh++

			itemDoc, err := w.loadOffer(ctx, link)
			if err != nil {
				log.Printf("  ⚠️ Skipping %s: %v", link, err)
				continue
			}
			if err := visit(link, itemDoc); err != nil {
				log.Printf("  ⚠️ Extraction failed for %s: %v", link, err)
				continue
			}

			visited++
			if w.cfg.MaxItems > 0 && visited >= w.cfg.MaxItems {
				log.Printf("🧮 Reached max_items (%d) - stopping", w.cfg.MaxItems)
				return nil
			}
		}
		log.Printf("📄 Page %d: %d offers, %d new", pageNum, len(links), fresh)

		if !HasNextPage(doc) {
			log.Printf("📄 Page %d: no next-page affordance - stopping", pageNum)
			return nil
		}
	}
	return nil
}

// pace enforces the configured minimum delay between navigations. The
// very first navigation of a walk is not delayed.
func (w *Walker) pace() {
	if !w.moved {
		w.moved = true
		return
	}
	if w.cfg.MinDelay > 0 {
		w.sleep(w.cfg.MinDelay)
	}
}

// loadOffer retries transient load failures up to the configured bound
// before giving the offer up.
func (w *Walker) loadOffer(ctx context.Context, offerURL string) (*goquery.Document, error) {
	var lastErr error
	for attempt := 0; attempt <= w.cfg.ItemRetries; attempt++ {
		if attempt > 0 {
			log.Printf("  🔁 Retry %d/%d for %s", attempt, w.cfg.ItemRetries, offerURL)
		}
		w.pace()
		doc, err := w.loader.Load(ctx, offerURL)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// OfferLinks returns the absolute, query-stripped offer URLs found on a
// listing page, in document order and without repeats.
func OfferLinks(doc *goquery.Document) []string {
	var links []string
	seen := mapset.NewSet[string]()
	doc.Find(`a[href*="` + offerHref + `"]`).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		href = strings.SplitN(href, "#", 2)[0]
		href = strings.SplitN(href, "?", 2)[0]
		if !strings.Contains(href, offerHref) {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = siteBase + href
		}
		if seen.Add(href) {
			links = append(links, href)
		}
	})
	return links
}

// HasNextPage reports whether the listing shows a forward-pagination
// affordance. rel=next survives redesigns far better than button markup.
func HasNextPage(doc *goquery.Document) bool {
	return doc.Find(`a[rel="next"], link[rel="next"], a[data-cy="pagination-forward"], a[data-testid="pagination-forward"]`).Length() > 0
}

func listingURL(start string, page int) string {
	u, err := url.Parse(start)
	if err != nil {
		return start
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
