package grouping_test

import (
	"testing"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/grouping"
)

// TestFold tests diacritic and whitespace folding.
//
// WHY: French product names circulate with and without accents; both spellings
// must land in the same bucket.
func TestFold(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Écarlate et Violet", "ecarlate et violet"},
		{"Épée  et   Bouclier", "epee et bouclier"},
		{"  Zénith   Suprême ", "zenith supreme"},
		{"already plain", "already plain"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := grouping.Fold(tc.in); got != tc.want {
			t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestNormalizeSeriesName tests alias resolution.
func TestNormalizeSeriesName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Coffret Dresseur d'Élite Écarlate et Violet", "ev"},
		{"Display Épée et Bouclier Évolution Céleste", "eb"},
		{"Coffret Zénith Suprême", "eb12.5"},
		{"Display Pokémon GO", "pogo"},
		{"Coffret ultra premium 151", "ev3.5"},
		{"Destinées de Paldea ETB", "ev4.5"},
		// Unknown sets fold to themselves for consistent grouping.
		{"Mystery Box Vol. 2", "mystery box vol. 2"},
	}
	for _, tc := range cases {
		if got := grouping.NormalizeSeriesName(tc.in); got != tc.want {
			t.Errorf("NormalizeSeriesName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	t.Run("accented and plain spellings share a bucket", func(t *testing.T) {
		a := grouping.NormalizeSeriesName("Écarlate et Violet Display")
		b := grouping.NormalizeSeriesName("ecarlate et violet display")
		if a != b {
			t.Errorf("expected the same bucket, got %q and %q", a, b)
		}
	})
}
