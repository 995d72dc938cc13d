// Dataset hygiene tools for the collected CSV: a uniqueness report and
// a cleanup pass for blocked-page sentinel rows.

package audit

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/sink"
)

// Report summarizes duplicate analysis over one dataset file. Row
// numbers are 1-based file lines, so the first data row is 2.
type Report struct {
	Path  string
	Total int
	Valid int

	DuplicateIDs          map[string][]int
	DuplicateURLs         map[string][]int
	DuplicateTitleCompany map[string][]int
	DuplicateRows         map[string][]int
}

// Analyze checks record uniqueness by id, url, title+company and full
// row content. Sentinel error rows are counted but excluded from the
// duplicate analysis.
func Analyze(path string) (*Report, error) {
	records, err := sink.ReadAll(path)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}

	ids := make(map[string][]int)
	urls := make(map[string][]int)
	titleCompany := make(map[string][]int)
	fullRows := make(map[string][]int)

	report := &Report{Path: path, Total: len(records)}
	for i, rec := range records {
		if strings.TrimSpace(rec.Title) == models.ErrorTitle {
			continue
		}
		report.Valid++

		rowNum := i + 2 // header is line 1
		if rec.ID != "" {
			ids[rec.ID] = append(ids[rec.ID], rowNum)
		}
		if rec.URL != "" {
			urls[rec.URL] = append(urls[rec.URL], rowNum)
		}
		if rec.Title != "" && rec.Company != "" {
			key := rec.Title + "|" + rec.Company
			titleCompany[key] = append(titleCompany[key], rowNum)
		}
		key := strings.Join([]string{rec.ID, rec.URL, rec.Title, rec.Company, rec.Salary, rec.Location, rec.WorkTime, rec.ContractType, rec.Description}, "|")
		fullRows[key] = append(fullRows[key], rowNum)
	}

	report.DuplicateIDs = onlyDuplicates(ids)
	report.DuplicateURLs = onlyDuplicates(urls)
	report.DuplicateTitleCompany = onlyDuplicates(titleCompany)
	report.DuplicateRows = onlyDuplicates(fullRows)
	return report, nil
}

func onlyDuplicates(counts map[string][]int) map[string][]int {
	dups := make(map[string][]int)
	for key, rows := range counts {
		if len(rows) > 1 {
			dups[key] = rows
		}
	}
	return dups
}

// Log prints the report the way a run operator reads it.
func (r *Report) Log() {
	log.Printf("🔎 Uniqueness report for %s", r.Path)
	log.Printf("  Total records: %d (%d valid, %d error rows)", r.Total, r.Valid, r.Total-r.Valid)
	log.Printf("  Duplicate ids: %d", len(r.DuplicateIDs))
	log.Printf("  Duplicate urls: %d", len(r.DuplicateURLs))
	log.Printf("  Duplicate title+company: %d", len(r.DuplicateTitleCompany))
	log.Printf("  Duplicate full rows: %d", len(r.DuplicateRows))
	for id, rows := range r.DuplicateIDs {
		log.Printf("    ⚠️ id %s at rows %v", id, rows)
	}
	for url, rows := range r.DuplicateURLs {
		log.Printf("    ⚠️ url %s at rows %v", url, rows)
	}
}

// CleanErrors removes sentinel error rows from the file in place and
// returns how many were dropped. With backup set, the original file is
// copied aside first.
func CleanErrors(path string, backup bool) (int, error) {
	records, err := sink.ReadAll(path)
	if err != nil {
		return 0, fmt.Errorf("clean %s: %w", path, err)
	}

	kept := make([]models.JobRecord, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Title) == models.ErrorTitle {
			continue
		}
		kept = append(kept, rec)
	}
	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if backup {
		backupPath := fmt.Sprintf("%s.backup_%s", path, time.Now().Format("20060102_150405"))
		if err := copyFile(path, backupPath); err != nil {
			return 0, fmt.Errorf("backup %s: %w", path, err)
		}
		log.Printf("💾 Backup created: %s", backupPath)
	}

	if err := sink.WriteAll(path, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
