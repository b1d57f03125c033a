package store

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxQueryRunes = 50

// Normalize prepares a string for comparison: trim, strip diacritics down
// to ASCII, lowercase.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	return strings.ToLower(s)
}

func truncateRunes(s string, max int) string {
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}

// search runs the generic filter pipeline shared by every list-style query:
// normalized substring match on the projected field, an optional extra
// predicate, then fixed-size pagination. It returns the total number of
// matches together with the requested page. A nil page yields the full
// filtered set; page numbers below 1 are normalized to 1.
func search[T any](rows []T, project func(T) string, page *int, query string, pred func(T) bool) (int, []T) {
	query = Normalize(truncateRunes(query, maxQueryRunes))
	matches := func(row T) bool {
		if pred != nil && !pred(row) {
			return false
		}
		if query == "" {
			return true
		}
		return strings.Contains(Normalize(project(row)), query)
	}

	if page == nil {
		all := make([]T, 0, len(rows))
		for _, row := range rows {
			if matches(row) {
				all = append(all, row)
			}
		}
		return len(all), all
	}

	p := *page
	if p < 1 {
		p = 1
	}
	toSkip := (p - 1) * PageSize

	total := 0
	skipped := 0
	results := make([]T, 0, PageSize)

	for _, row := range rows {
		if !matches(row) {
			continue
		}
		total++
		if skipped < toSkip {
			skipped++
		} else if len(results) < PageSize {
			results = append(results, row)
		}
	}

	return total, results
}
