package olx

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/extract"
	"github.com/maggyy666/Analysis-of-Linguistic-Features-in-Online-Job-Advertisements/internal/models"
)

// Regex fallbacks run against the folded page text (lowercase, no
// diacritics), so the patterns are written in folded form too.
var (
	salaryPattern = regexp.MustCompile(
		`\d[\d .,]*(?:-\s*\d[\d .,]*)?\s*(?:zl|pln)\b(?:\s*(?:/|za)\s*(?:mies\.?|miesiac[a-z]*|godz\.?|godzin[a-z]*|h\b))?`)
	// umow[a-z]* absorbs the case inflections (umowa, umowe, umowy)
	contractPattern = regexp.MustCompile(
		`umow[a-z]* o prac[a-z]*|umow[a-z]* zleceni[a-z]*|umow[a-z]* o dzie[a-z]*|umow[a-z]* agencyjn[a-z]*|samozatrudnienie|b2b`)
	workTimePattern = regexp.MustCompile(
		`pelny etat|niepelny etat|czesc etatu|1/2 etatu|3/4 etatu|praca dodatkowa|praca sezonowa|staz|praktyki`)
)

// offerFields maps each canonical field to its strategy list: exact
// label proximity first, then section lookup, regex over page text last.
var offerFields = []extract.FieldSpec{
	{Name: models.FieldTitle, Strategies: []extract.Strategy{
		extract.First("h1"),
	}},
	{Name: models.FieldCompany, Strategies: []extract.Strategy{
		extract.Label("Nazwa firmy", "Firma"),
		extract.First("h1 + p"),
	}},
	{Name: models.FieldSalary, Strategies: []extract.Strategy{
		extract.Label("Wynagrodzenie"),
		extract.Pattern(salaryPattern),
	}},
	{Name: models.FieldLocation, Strategies: []extract.Strategy{
		extract.Label("Lokalizacja"),
		extract.Section("Lokalizacja", 0),
	}},
	{Name: models.FieldWorkTime, Strategies: []extract.Strategy{
		extract.Label("Wymiar pracy"),
		extract.Pattern(workTimePattern),
	}},
	{Name: models.FieldContractType, Strategies: []extract.Strategy{
		extract.Label("Typ umowy"),
		extract.Pattern(contractPattern),
	}},
	{Name: models.FieldDescription, Strategies: []extract.Strategy{
		extract.Section("Opis", 0),
		extract.Label("Opis"),
	}},
}

// ExtractOffer materializes one offer page into a raw extraction.
// Fields the page does not carry stay absent; extraction never fails.
func ExtractOffer(offerURL string, doc *goquery.Document) *models.RawExtraction {
	raw := models.NewRawExtraction(models.SourceOLX, offerURL)
	for _, spec := range offerFields {
		raw.Set(spec.Name, extract.Field(doc, spec))
	}
	return raw
}
