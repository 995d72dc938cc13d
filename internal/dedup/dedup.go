// Cross-run deduplication. Collection runs are restartable: before
// visiting items we preload ids already present in the output file and
// skip them, so re-running extends the dataset instead of duplicating it.

package dedup

import (
	"log"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/sink"
)

// SeenIndex answers whether a posting is already in the output file.
type SeenIndex struct {
	ids mapset.Set[string]
}

// Load builds the index from the output CSV. A missing file is a fresh
// start, not an error. Sentinel error rows are ignored so blocked pages
// get another chance on the next run.
func Load(path string) *SeenIndex {
	idx := &SeenIndex{ids: mapset.NewSet[string]()}

	records, err := sink.ReadAll(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("📋 No existing file at %s - starting fresh", path)
		} else {
			log.Printf("⚠️ Could not preload %s: %v. Continuing without dedup.", path, err)
		}
		return idx
	}

	for _, rec := range records {
		if strings.TrimSpace(rec.Title) == models.ErrorTitle {
			continue
		}
		if rec.ID != "" {
			idx.ids.Add(rec.ID)
		}
		if rec.URL != "" {
			idx.ids.Add(models.DeriveID(rec.URL))
		}
	}
	log.Printf("📋 Loaded %d seen ids from %s", idx.ids.Cardinality(), path)
	return idx
}

// Seen reports whether the posting behind the URL was already collected.
func (s *SeenIndex) Seen(url string) bool {
	return s.SeenID(models.DeriveID(url))
}

// SeenID is the same check for sources that carry native ids.
func (s *SeenIndex) SeenID(id string) bool {
	return id != "" && s.ids.Contains(id)
}

// Add marks an id as collected within the current run.
func (s *SeenIndex) Add(id string) {
	if id != "" {
		s.ids.Add(id)
	}
}
