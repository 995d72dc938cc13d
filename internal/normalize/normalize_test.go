package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
)

func TestRecord_FullyPopulated(t *testing.T) {
	raw := models.NewRawExtraction(models.SourceOLX, "https://www.olx.pl/oferta/praca/mlodszy-programista-CID4-ID1abc.html")
	raw.Set(models.FieldTitle, "Młodszy programista")
	raw.Set(models.FieldCompany, "Acme Sp. z o.o.")
	raw.Set(models.FieldSalary, "6 000 - 8 000 zł")
	raw.Set(models.FieldLocation, "Warszawa, Mokotów")
	raw.Set(models.FieldWorkTime, "Pełny etat")
	raw.Set(models.FieldContractType, "Umowa o pracę")
	raw.Set(models.FieldDescription, "Szukamy programisty.")

	at := time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)
	rec := NewWithClock(func() time.Time { return at }).Record(raw)

	assert.Equal(t, "mlodszy-programista-CID4-ID1abc", rec.ID)
	assert.Equal(t, raw.URL, rec.URL)
	assert.Equal(t, "Młodszy programista", rec.Title)
	assert.Equal(t, "Acme Sp. z o.o.", rec.Company)
	assert.Equal(t, "6 000 - 8 000 zł", rec.Salary)
	assert.Equal(t, "Warszawa, Mokotów", rec.Location)
	assert.Equal(t, "Pełny etat", rec.WorkTime)
	assert.Equal(t, "Umowa o pracę", rec.ContractType)
	assert.Equal(t, "Szukamy programisty.", rec.Description)
	assert.Equal(t, at, rec.ScrapedAt)
}

func TestRecord_EmptyExtraction(t *testing.T) {
	raw := models.NewRawExtraction(models.SourceOLX, "https://www.olx.pl/oferta/praca/jakas-oferta-ID9xyz.html")

	rec := New().Record(raw)

	// no field found still yields a usable record with a derived id
	assert.Equal(t, "jakas-oferta-ID9xyz", rec.ID)
	assert.Equal(t, raw.URL, rec.URL)
	assert.Empty(t, rec.Title)
	assert.Empty(t, rec.Company)
	assert.Empty(t, rec.Salary)
	assert.Empty(t, rec.Location)
	assert.Empty(t, rec.WorkTime)
	assert.Empty(t, rec.ContractType)
	assert.Empty(t, rec.Description)
	assert.False(t, rec.ScrapedAt.IsZero())
}

func TestRecord_SourceIDWins(t *testing.T) {
	raw := models.NewRawExtraction(models.SourceAdzuna, "https://adzuna.example/details/4821")
	raw.Set(models.FieldID, "4821000017")

	rec := New().Record(raw)
	assert.Equal(t, "4821000017", rec.ID)
}

func TestRecord_DeterministicID(t *testing.T) {
	raw := models.NewRawExtraction(models.SourceOLX, "https://www.olx.pl/oferta/praca/stala-oferta-ID5aaa.html")

	a := New().Record(raw)
	b := New().Record(raw)
	assert.Equal(t, a.ID, b.ID)
}

func TestRecord_DoesNotMutateInput(t *testing.T) {
	raw := models.NewRawExtraction(models.SourceOLX, "https://www.olx.pl/oferta/praca/oferta-ID7bbb.html")
	raw.Set(models.FieldTitle, "Tester")

	New().Record(raw)

	assert.Len(t, raw.Fields, 1)
	assert.Equal(t, "Tester", raw.Get(models.FieldTitle))
	assert.Equal(t, "", raw.Get(models.FieldID))
}

func TestRecord_ClockAdvances(t *testing.T) {
	ticks := []time.Time{
		time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 10, 12, 0, 5, 0, time.UTC),
	}
	i := 0
	n := NewWithClock(func() time.Time { t := ticks[i]; i++; return t })

	raw := models.NewRawExtraction(models.SourceOLX, "https://www.olx.pl/oferta/praca/x-ID1.html")
	first := n.Record(raw)
	second := n.Record(raw)

	assert.True(t, second.ScrapedAt.After(first.ScrapedAt))
}
