package filter

// DefaultExcludedKeywords lists the keyword families for postings
// outside the target domain. Matching is substring-based, so a single
// hit anywhere in the title or category drops the posting even when the
// rest of the title sounds relevant. False negatives are acceptable
// here, false positives on inclusion are not.
//
// Keywords must be in folded form: lowercase, no diacritics.
var DefaultExcludedKeywords = []string{
	// retail
	"retail", "shop assistant", "sales assistant", "store assistant", "cashier", "sprzedawca",
	// warehouse
	"warehouse", "forklift", "picker", "packer", "magazyn",
	// production
	"production", "factory", "assembly line", "produkcja",
	// delivery
	"delivery", "courier", "driver", "kurier", "kierowca",
	// hospitality
	"hospitality", "waiter", "waitress", "bartender", "barista", "chef", "kitchen", "kelner",
	// cleaning
	"cleaning", "cleaner", "housekeeping", "sprzatanie",
}
