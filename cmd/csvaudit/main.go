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

	report, err := audit.Analyze(path)
	if err != nil {
		log.Fatalf("❌ Audit failed: %v", err)
	}
	report.Log()
}
