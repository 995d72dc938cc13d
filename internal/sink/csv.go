// CSV persistence for canonical records. The sink is append-only and
// crash-consistent at row granularity; it does not deduplicate, callers
// that want idempotent re-runs preload existing ids (internal/dedup).

package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
)

// Header is the output schema, in order. description goes last because
// it is the only field with embedded newlines.
var Header = []string{"id", "url", "title", "company", "salary", "location", "work_time", "contract_type", "scraped_at", "description"}

// TimeLayout is how scraped_at renders in the CSV.
const TimeLayout = "2006-01-02 15:04:05"

// Writer appends canonical records to one CSV file.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Append writes the records to the end of the file, creating it with a
// header row first when it does not exist or is empty.
func (w *Writer) Append(records []models.JobRecord) error {
	if len(records) == 0 {
		return nil
	}
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", w.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", w.path, err)
	}
	return writeRows(f, records, info.Size() == 0)
}

// WriteAll replaces the file's contents with a header row and the given
// records. Used by the cleanup tool, not by collection runs.
func WriteAll(path string, records []models.JobRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeRows(f, records, true)
}

func writeRows(f *os.File, records []models.JobRecord, withHeader bool) error {
	cw := csv.NewWriter(f)
	if withHeader {
		if err := cw.Write(Header); err != nil {
			return err
		}
	}
	for _, rec := range records {
		if err := cw.Write(row(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return f.Sync()
}

func row(r models.JobRecord) []string {
	scrapedAt := ""
	if !r.ScrapedAt.IsZero() {
		scrapedAt = r.ScrapedAt.Format(TimeLayout)
	}
	return []string{r.ID, r.URL, r.Title, r.Company, r.Salary, r.Location, r.WorkTime, r.ContractType, scrapedAt, r.Description}
}

// ReadAll loads every record from the file, resolving columns by header
// name so column reordering in old datasets stays readable.
func ReadAll(path string) ([]models.JobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	field := func(rec []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var records []models.JobRecord
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, fmt.Errorf("read %s: %w", path, err)
		}
		r := models.JobRecord{
			ID:           field(rec, "id"),
			URL:          field(rec, "url"),
			Title:        field(rec, "title"),
			Company:      field(rec, "company"),
			Salary:       field(rec, "salary"),
			Location:     field(rec, "location"),
			WorkTime:     field(rec, "work_time"),
			ContractType: field(rec, "contract_type"),
			Description:  field(rec, "description"),
		}
		if raw := field(rec, "scraped_at"); raw != "" {
			if ts, err := time.Parse(TimeLayout, raw); err == nil {
				r.ScrapedAt = ts
			}
		}
		records = append(records, r)
	}
	return records, nil
}
