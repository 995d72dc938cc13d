// The convergence point of both adapters: raw extractions go in, one
// canonical record shape comes out, regardless of provenance.

package normalize

import (
	"time"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
)

// Normalizer builds canonical records from raw extractions.
//
// Absence and blank both come out as the empty string: the sources
// conflate "field not present" and "field present but blank", so
// downstream code must not assume a richer tri-state.
type Normalizer struct {
	now func() time.Time
}

func New() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewWithClock is for tests that need to observe timestamp behavior.
func NewWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Record builds a new canonical record from one raw extraction. The
// input is never mutated. The id is the source-native id when the
// adapter provided one (the API source does), otherwise it is derived
// from the URL so re-runs produce stable identifiers. scraped_at is
// stamped here, at normalization time, not at fetch time.
func (n *Normalizer) Record(raw *models.RawExtraction) models.JobRecord {
	rec := models.JobRecord{
		ID:           raw.Get(models.FieldID),
		URL:          raw.URL,
		Title:        raw.Get(models.FieldTitle),
		Company:      raw.Get(models.FieldCompany),
		Salary:       raw.Get(models.FieldSalary),
		Location:     raw.Get(models.FieldLocation),
		WorkTime:     raw.Get(models.FieldWorkTime),
		ContractType: raw.Get(models.FieldContractType),
		Description:  raw.Get(models.FieldDescription),
		ScrapedAt:    n.now(),
	}
	if rec.ID == "" {
		rec.ID = models.DeriveID(raw.URL)
	}
	return rec
}
