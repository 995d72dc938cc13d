package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/browser"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/config"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/dedup"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/normalize"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/reporter"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/scraper/olx"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/sink"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. OLX start URL: %s (max %d items, %d pages)", cfg.OLX.StartURL, cfg.OLX.MaxItems, cfg.OLX.MaxPages)

	//optional run-summary reporting
	var report *reporter.TelegramReporter
	if cfg.TelegramToken != "" {
		r, err := reporter.NewTelegramReporter(cfg)
		if err != nil {
			log.Printf("⚠️ Telegram reporter disabled: %v", err)
		} else {
			report = r
			log.Println("🤖 Telegram reporter initialized.")
		}
	}

	//interruptible between items; whatever was collected still gets flushed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("🚀 Starting OLX collection run...")

	//init playwright manager
	pwManager, err := browser.NewPlaywright(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer pwManager.Close()

	//load cookies if a session export exists
	var cookies []playwright.OptionalCookie
	if cfg.CookiesPath != "" {
		loaded, err := browser.LoadCookies(filepath.Join(cfg.CookiesPath, "cookies-olx.json"))
		if err != nil {
			log.Printf("⚠️ Could not load cookies: %v. Continuing.", err)
		} else {
			cookies = loaded
			log.Printf("🍪 Loaded %d cookies", len(cookies))
		}
	}

	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	//skip offers already present in the output file
	seen := dedup.Load(cfg.OLX.OutputPath)

	scr := olx.New(cfg, browser.NewPageLoader(page))
	scr.Skip = seen.Seen

	start := time.Now()
	raws, scrapeErr := scr.Scrape(ctx)

	//normalize and flush everything gathered, even on abort
	norm := normalize.New()
	records := make([]models.JobRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, norm.Record(raw))
	}
	if err := sink.NewWriter(cfg.OLX.OutputPath).Append(records); err != nil {
		report.SendError("OLX", err)
		log.Fatalf("❌ Failed to write output: %v", err)
	}
	log.Printf("📁 Appended %d records to %s", len(records), cfg.OLX.OutputPath)

	if scrapeErr != nil {
		report.SendError("OLX", scrapeErr)
		log.Fatalf("❌ Run aborted after %d records: %v", len(records), scrapeErr)
	}

	report.SendRunSummary("OLX", len(records), cfg.OLX.OutputPath, time.Since(start))
	log.Println("🏁 Execution finished.")
}
