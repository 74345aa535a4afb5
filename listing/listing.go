// Package listing derives display lists from raw destination and
// country collections: locale-aware sorting, free-text filtering and
// the table display cap.
package listing

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"traveldest/client/models"
)

// DisplayLimit is the maximum number of table rows shown regardless of
// match count.
const DisplayLimit = 10

// FilterSort turns the full destination collection and a free-text
// query into the display list: stable-sorted ascending by country,
// filtered to entries whose title or country contains the query
// case-insensitively, capped at DisplayLimit. The input slice is never
// mutated and the result is always re-derived from the full source, so
// clearing the query restores the full sorted-and-capped list.
func FilterSort(destinations []models.Destination, query string) []models.Destination {
	sorted := make([]models.Destination, len(destinations))
	copy(sorted, destinations)

	c := collate.New(language.English)
	sort.SliceStable(sorted, func(i, j int) bool {
		return c.CompareString(sorted[i].Country, sorted[j].Country) < 0
	})

	if query != "" {
		q := strings.ToLower(query)
		filtered := sorted[:0]
		for _, d := range sorted {
			if strings.Contains(strings.ToLower(d.Title), q) ||
				strings.Contains(strings.ToLower(d.Country), q) {
				filtered = append(filtered, d)
			}
		}
		sorted = filtered
	}

	if len(sorted) > DisplayLimit {
		sorted = sorted[:DisplayLimit]
	}
	return sorted
}

// ByAuthor keeps only the destinations posted by author. Used for the
// my-destinations view.
func ByAuthor(destinations []models.Destination, author string) []models.Destination {
	var mine []models.Destination
	for _, d := range destinations {
		if d.Author == author {
			mine = append(mine, d)
		}
	}
	return mine
}

// SortCountries orders the country reference list by name for the
// dropdown, locale-aware like the destination table.
func SortCountries(countries []models.Country) {
	c := collate.New(language.English)
	sort.SliceStable(countries, func(i, j int) bool {
		return c.CompareString(countries[i].Name, countries[j].Name) < 0
	})
}
