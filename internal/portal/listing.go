package portal

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// The service does not guarantee key uniqueness in its directories, so every
// listing is normalized client-side before display: de-duplicated by key,
// then filtered. Both steps are pure and trigger no network calls.

// removeDiacritics strips diacritical marks from a string (e.g. "Jiří" -> "Jiri").
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// normalizeKey folds an identifier for case-insensitive matching.
func normalizeKey(s string) string {
	return strings.ToLower(removeDiacritics(s))
}

// dedupeByKey collapses repeated-key records. The record keeps the position
// of its first occurrence but the value of its last, matching map-insertion
// semantics.
func dedupeByKey[T any](items []T, key func(T) string) []T {
	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if pos, seen := index[k]; seen {
			out[pos] = item
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}

// filterByKey keeps records whose key contains the filter text,
// case-insensitively. An empty filter keeps everything.
func filterByKey[T any](items []T, key func(T) string, filter string) []T {
	if filter == "" {
		return items
	}
	needle := normalizeKey(filter)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(normalizeKey(key(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}
