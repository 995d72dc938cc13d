package olx

import (
	"context"
	"fmt"
	"log"

	"github.com/PuerkitoBio/goquery"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/config"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/scraper"
)

var _ scraper.Source = (*Scraper)(nil)

// Scraper orchestrates the listing walker and the field extractor
// against the browser-rendered OLX listing.
type Scraper struct {
	cfg    *config.Config
	loader Loader

	// Skip, when set, suppresses offers collected by earlier runs.
	Skip func(url string) bool
}

func New(cfg *config.Config, loader Loader) *Scraper {
	return &Scraper{cfg: cfg, loader: loader}
}

func (s *Scraper) Name() string {
	return "OLX"
}

func (s *Scraper) Scrape(ctx context.Context) ([]*models.RawExtraction, error) {
	log.Println("📋 Collecting job offers from OLX...")

	walker := NewWalker(s.loader, WalkConfig{
		StartURL:    s.cfg.OLX.StartURL,
		MinDelay:    s.cfg.OLX.MinDelay(),
		MaxItems:    s.cfg.OLX.MaxItems,
		MaxPages:    s.cfg.OLX.MaxPages,
		ItemRetries: s.cfg.OLX.ItemRetries,
	})
	walker.Skip = s.Skip

	var results []*models.RawExtraction
	err := walker.Walk(ctx, func(offerURL string, doc *goquery.Document) error {
		raw := ExtractOffer(offerURL, doc)
		results = append(results, raw)
		// advisory progress counter, never used for control flow
		if s.cfg.OLX.MaxItems > 0 {
			log.Printf("  📊 Progress: %d/%d - %s", len(results), s.cfg.OLX.MaxItems, raw.Get(models.FieldTitle))
		} else {
			log.Printf("  📊 Progress: %d - %s", len(results), raw.Get(models.FieldTitle))
		}
		return nil
	})
	if err != nil {
		return results, fmt.Errorf("olx scrape: %w", err)
	}
	log.Printf("✅ OLX finished: %d offers collected", len(results))
	return results, nil
}
