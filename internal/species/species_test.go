package species

import (
	"testing"

	"github.com/five82/holocron/internal/swapi"
)

func TestTranslateHeight(t *testing.T) {
	cases := []struct {
		name string
		in   swapi.Height
		want string
	}{
		{"rounds up", "66", `26"`},
		{"zero", "0", `0"`},
		{"wookie", "210", `83"`},
		{"fraction", "170.5", `67"`},
		{"padded", "  180 ", `71"`},
		{"negative tiny", "-1", `0"`},
		{"unknown", "unknown", "N/A"},
		{"n/a", "n/a", "N/A"},
		{"empty", "", "N/A"},
		{"blank", "   ", "N/A"},
		{"nan", "NaN", "N/A"},
		{"inf", "Inf", "N/A"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TranslateHeight(tc.in); got != tc.want {
				t.Fatalf("TranslateHeight(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMapImage_KnownKeys(t *testing.T) {
	for _, key := range ImageKeys() {
		want := images[key]
		if want == "" {
			t.Fatalf("images[%q] missing", key)
		}
		for _, name := range []string{key, upperFirst(key), upperFirst(key) + "'s kin"} {
			got, ok := MapImage(name)
			if !ok || got != want {
				t.Fatalf("MapImage(%q) = %q, %v; want %q, true", name, got, ok, want)
			}
		}
	}
}

func TestMapImage_Misses(t *testing.T) {
	for _, name := range []string{"Ewok", "", "Hutt", "'yoda"} {
		if got, ok := MapImage(name); ok || got != "" {
			t.Fatalf("MapImage(%q) = %q, %v; want no match", name, got, ok)
		}
	}
}

func TestMapImage_WookieExample(t *testing.T) {
	got, ok := MapImage("Wookie")
	if !ok || got != "https://static.wikia.nocookie.net/starwars/images/1/1e/Chewbacca-Fathead.png" {
		t.Fatalf("MapImage(Wookie) = %q, %v", got, ok)
	}
}

func TestCards_EndToEndScenario(t *testing.T) {
	list := []swapi.Species{
		{Name: "Yoda'", AverageHeight: "66", Classification: "mammal", Films: []string{"a", "b"}, Language: "Galactic basic"},
		{Name: "Human", AverageHeight: "unknown", Designation: "sentient", Films: []string{"a"}},
	}
	cards := Cards(list)
	if len(cards) != 2 {
		t.Fatalf("Cards returned %d cards, want 2", len(cards))
	}

	yoda := cards[0]
	if yoda.Height != `26"` || !yoda.HasImage || yoda.Image != images["yoda"] {
		t.Fatalf("yoda card = %#v", yoda)
	}
	if yoda.Key != "Yoda'" || yoda.NumFilms != 2 || yoda.Language != "Galactic basic" || yoda.Classification != "mammal" {
		t.Fatalf("yoda card fields = %#v", yoda)
	}

	human := cards[1]
	if human.Height != "N/A" || !human.HasImage || human.Image != images["human"] {
		t.Fatalf("human card = %#v", human)
	}
	if human.NumFilms != 1 || human.Designation != "sentient" {
		t.Fatalf("human card fields = %#v", human)
	}
}

func TestCards_EmptyIsNil(t *testing.T) {
	if got := Cards(nil); got != nil {
		t.Fatalf("Cards(nil) = %#v, want nil", got)
	}
}

func TestNewCard_UnknownImage(t *testing.T) {
	card := NewCard(swapi.Species{Name: "Ewok", AverageHeight: "100"})
	if card.HasImage || card.Image != "" {
		t.Fatalf("Ewok card image = %q (HasImage=%v), want none", card.Image, card.HasImage)
	}
	if card.Height != `39"` {
		t.Fatalf("Ewok height = %q, want 39\"", card.Height)
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
