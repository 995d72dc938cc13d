package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/config"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/dedup"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/normalize"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/reporter"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/scraper/adzuna"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/sink"
)

func main() {
	//load config and fail fast on missing credentials, before any I/O
	cfg := config.Load()
	if err := cfg.ValidateAdzuna(); err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Printf("🔧 Config loaded. Adzuna country: %s, keywords: %v", cfg.Adzuna.Country, cfg.Adzuna.Keywords)

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("🚀 Starting Adzuna collection run...")

	//skip postings already present in the output file
	seen := dedup.Load(cfg.Adzuna.OutputPath)

	start := time.Now()
	raws, scrapeErr := adzuna.New(cfg).Scrape(ctx)

	//normalize and flush everything gathered, even on abort
	norm := normalize.New()
	records := make([]models.JobRecord, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		rec := norm.Record(raw)
		if seen.SeenID(rec.ID) {
			skipped++
			continue
		}
		seen.Add(rec.ID)
		records = append(records, rec)
	}
	if skipped > 0 {
		log.Printf("⏭️ Skipped %d already collected postings", skipped)
	}
	if err := sink.NewWriter(cfg.Adzuna.OutputPath).Append(records); err != nil {
		report.SendError("Adzuna", err)
		log.Fatalf("❌ Failed to write output: %v", err)
	}
	log.Printf("📁 Appended %d records to %s", len(records), cfg.Adzuna.OutputPath)

	if scrapeErr != nil {
		report.SendError("Adzuna", scrapeErr)
		log.Fatalf("❌ Run aborted after %d records: %v", len(records), scrapeErr)
	}

	report.SendRunSummary("Adzuna", len(records), cfg.Adzuna.OutputPath, time.Since(start))
	log.Println("🏁 Execution finished.")
}
