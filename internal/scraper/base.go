// Define an interface for all source adapters
// Ensure consistency

package scraper

import (
	"context"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
)

//Source defines the interface that both collection adapters implement
type Source interface {
	//Scrape collects raw extractions. On failure the adapter returns
	//whatever it gathered before the error so the caller can still
	//flush it to the sink.
	Scrape(ctx context.Context) ([]*models.RawExtraction, error)

	//Name is the source name for logs and provenance (OLX, Adzuna)
	Name() string
}
