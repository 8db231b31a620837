package species

import (
	"math"
	"strconv"
	"strings"

	"github.com/five82/holocron/internal/swapi"
)

const (
	cmPerInch    = 2.54
	notAvailable = "N/A"
)

// images maps lookup keys to card artwork.
var images = map[string]string{
	"droid":      "https://static.wikia.nocookie.net/starwars/images/f/fb/Droid_Trio_TLJ_alt.png",
	"human":      "https://static.wikia.nocookie.net/starwars/images/3/3f/HumansInTheResistance-TROS.jpg",
	"trandoshan": "https://static.wikia.nocookie.net/starwars/images/7/72/Bossk_full_body.png",
	"wookie":     "https://static.wikia.nocookie.net/starwars/images/1/1e/Chewbacca-Fathead.png",
	"yoda":       "https://static.wikia.nocookie.net/starwars/images/d/d6/Yoda_SWSB.png",
}

// Card is the display record for one species.
type Card struct {
	Key            string
	Name           string
	Classification string
	Designation    string
	Height         string
	Image          string
	HasImage       bool
	NumFilms       int
	Language       string
}

// NewCard derives the display values for sp.
func NewCard(sp swapi.Species) Card {
	image, ok := MapImage(sp.Name)
	return Card{
		Key:            sp.Name,
		Name:           sp.Name,
		Classification: sp.Classification,
		Designation:    sp.Designation,
		Height:         TranslateHeight(sp.AverageHeight),
		Image:          image,
		HasImage:       ok,
		NumFilms:       len(sp.Films),
		Language:       sp.Language,
	}
}

// Cards maps list to cards, keeping order.
func Cards(list []swapi.Species) []Card {
	if len(list) == 0 {
		return nil
	}
	out := make([]Card, len(list))
	for i, sp := range list {
		out[i] = NewCard(sp)
	}
	return out
}

// MapImage returns the artwork URL for a species display name. The name is
// lowercased and cut at the first apostrophe ("Yoda's species" -> "yoda").
func MapImage(name string) (string, bool) {
	key := strings.Replace(strings.ToLower(name), "https", "http", 1)
	key, _, _ = strings.Cut(key, "'")
	url, ok := images[key]
	return url, ok
}

// ImageKeys returns the known lookup keys in sorted order.
func ImageKeys() []string {
	return []string{"droid", "human", "trandoshan", "wookie", "yoda"}
}

// TranslateHeight converts a centimeter height to whole inches, e.g. 66 -> 26".
// Non-numeric values yield "N/A".
func TranslateHeight(h swapi.Height) string {
	cm, ok := parseNumber(h.String())
	if !ok {
		return notAvailable
	}
	inches := math.Floor(cm/cmPerInch + 0.5)
	if inches == 0 {
		inches = 0 // drop negative zero
	}
	return strconv.FormatFloat(inches, 'f', -1, 64) + `"`
}

func parseNumber(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
