package main

import (
	"log"
	"os"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/audit"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/config"
)

func main() {
	cfg := config.Load()

	path := cfg.OLX.OutputPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	removed, err := audit.CleanErrors(path, true)
	if err != nil {
		log.Fatalf("❌ Cleanup failed: %v", err)
	}
	if removed == 0 {
		log.Printf("✨ %s is clean - no error rows found", path)
		return
	}
	log.Printf("🧹 Removed %d error rows from %s", removed, path)
}
