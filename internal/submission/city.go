package submission

import (
	"strings"
)

// citySpellings are the accepted ways of writing the serviceable city in a
// delivery address: native spelling, ASCII transliteration, English exonym.
// One validator for both inquiries and checkout, so the rules cannot drift.
var citySpellings = []string{"göteborg", "goteborg", "gothenburg"}

// AddressInServiceArea reports whether the address names the serviceable
// city, using a case-insensitive substring match against the known spellings.
func AddressInServiceArea(address string) bool {
	lower := strings.ToLower(address)
	for _, city := range citySpellings {
		if strings.Contains(lower, city) {
			return true
		}
	}
	return false
}
