package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/sink"
)

func record(id, url, title, company string) models.JobRecord {
	return models.JobRecord{
		ID:        id,
		URL:       url,
		Title:     title,
		Company:   company,
		ScrapedAt: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}
}

func writeDataset(t *testing.T, records []models.JobRecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, sink.WriteAll(path, records))
	return path
}

func TestAnalyze_Clean(t *testing.T) {
	path := writeDataset(t, []models.JobRecord{
		record("a-ID1", "https://www.olx.pl/oferta/praca/a-ID1.html", "Programista", "Acme"),
		record("b-ID2", "https://www.olx.pl/oferta/praca/b-ID2.html", "Tester", "Beta"),
	})

	report, err := Analyze(path)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Valid)
	assert.Empty(t, report.DuplicateIDs)
	assert.Empty(t, report.DuplicateURLs)
	assert.Empty(t, report.DuplicateTitleCompany)
	assert.Empty(t, report.DuplicateRows)
}

func TestAnalyze_FindsDuplicates(t *testing.T) {
	path := writeDataset(t, []models.JobRecord{
		record("a-ID1", "https://www.olx.pl/oferta/praca/a-ID1.html", "Programista", "Acme"),
		record("a-ID1", "https://www.olx.pl/oferta/praca/a-ID1.html", "Programista", "Acme"),
		record("c-ID3", "https://www.olx.pl/oferta/praca/c-ID3.html", "Programista", "Acme"),
	})

	report, err := Analyze(path)
	require.NoError(t, err)

	// row numbers are file lines, header is line 1
	assert.Equal(t, map[string][]int{"a-ID1": {2, 3}}, report.DuplicateIDs)
	assert.Equal(t, []int{2, 3}, report.DuplicateURLs["https://www.olx.pl/oferta/praca/a-ID1.html"])
	assert.Equal(t, []int{2, 3, 4}, report.DuplicateTitleCompany["Programista|Acme"])
	assert.Len(t, report.DuplicateRows, 1)
}

func TestAnalyze_IgnoresErrorRows(t *testing.T) {
	path := writeDataset(t, []models.JobRecord{
		record("a-ID1", "https://www.olx.pl/oferta/praca/a-ID1.html", models.ErrorTitle, ""),
		record("a-ID1", "https://www.olx.pl/oferta/praca/a-ID1.html", models.ErrorTitle, ""),
		record("b-ID2", "https://www.olx.pl/oferta/praca/b-ID2.html", "Tester", "Beta"),
	})

	report, err := Analyze(path)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Valid)
	assert.Empty(t, report.DuplicateIDs)
}

func TestCleanErrors_RemovesSentinelRows(t *testing.T) {
	path := writeDataset(t, []models.JobRecord{
		record("a-ID1", "https://www.olx.pl/oferta/praca/a-ID1.html", "Programista", "Acme"),
		record("b-ID2", "https://www.olx.pl/oferta/praca/b-ID2.html", models.ErrorTitle, ""),
		record("c-ID3", "https://www.olx.pl/oferta/praca/c-ID3.html", "Tester", "Beta"),
	})

	removed, err := CleanErrors(path, true)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	kept, err := sink.ReadAll(path)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, "a-ID1", kept[0].ID)
	assert.Equal(t, "c-ID3", kept[1].ID)

	backups, err := filepath.Glob(path + ".backup_*")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	original, err := sink.ReadAll(backups[0])
	require.NoError(t, err)
	assert.Len(t, original, 3)
}

func TestCleanErrors_NoErrorRows(t *testing.T) {
	path := writeDataset(t, []models.JobRecord{
		record("a-ID1", "https://www.olx.pl/oferta/praca/a-ID1.html", "Programista", "Acme"),
	})

	removed, err := CleanErrors(path, true)
	require.NoError(t, err)
	assert.Zero(t, removed)

	// nothing removed means no backup either
	backups, err := filepath.Glob(path + ".backup_*")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestCleanErrors_MissingFile(t *testing.T) {
	_, err := CleanErrors(filepath.Join(t.TempDir(), "nope.csv"), false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
