// Package grouping derives normalized series names from product display
// names, so "Coffret Dresseur d'Élite Écarlate et Violet" and "coffret
// dresseur d'elite ecarlate et violet" land in the same series bucket.
package grouping

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks after NFD decomposition, turning
// "Écarlate" into "Ecarlate".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// aliases maps folded name fragments to a canonical series token. French
// sets circulate under both their EB/EV codes and their full names.
var aliases = map[string]string{
	"epee et bouclier":     "eb",
	"ecarlate et violet":   "ev",
	"soleil et lune":       "sl",
	"xy":                   "xy",
	"destinees de paldea":  "ev4.5",
	"151":                  "ev3.5",
	"zenith supreme":       "eb12.5",
	"pokemon go":           "pogo",
}

// Fold lowercases s and strips diacritics and redundant whitespace.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	return strings.Join(strings.Fields(folded), " ")
}

// NormalizeSeriesName maps a product display name to its series bucket:
// fold, then resolve known aliases by longest fragment match. Names with no
// alias fold to themselves, so unknown sets still group consistently.
func NormalizeSeriesName(name string) string {
	folded := Fold(name)
	best := ""
	bestLen := 0
	for fragment, canonical := range aliases {
		if strings.Contains(folded, fragment) && len(fragment) > bestLen {
			best = canonical
			bestLen = len(fragment)
		}
	}
	if best != "" {
		return best
	}
	return folded
}
