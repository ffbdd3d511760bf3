package normalize

import (
	"sync"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lowercase", input: "GERONE", want: "gerone"},
		{name: "acute accent", input: "Gérone", want: "gerone"},
		{name: "tilde", input: "España", want: "espana"},
		{name: "umlaut", input: "Bayern München", want: "bayernmunchen"},
		{name: "spaces removed", input: "  Man   City ", want: "mancity"},
		{name: "punctuation removed", input: "Man. Utd", want: "manutd"},
		{name: "hyphen and ampersand", input: "Brighton & Hove-Albion", want: "brightonhovealbion"},
		{name: "apostrophe", input: "Borussia M'gladbach", want: "borussiamgladbach"},
		{name: "digits kept", input: "Schalke 04", want: "schalke04"},
		{name: "sharp s", input: "Fußball Club", want: "fussballclub"},
		{name: "slashed o", input: "Bodø/Glimt", want: "bodoglimt"},
		{name: "polish l", input: "Łódź", want: "lodz"},
		{name: "turkish dotted capital i", input: "İstanbul", want: "istanbul"},
		{name: "turkish dotless i", input: "Beşiktaş Kırmızı", want: "besiktaskirmizi"},
		{name: "ligature", input: "Œuvre ﬁnal", want: "oeuvrefinal"},
		{name: "fullwidth", input: "ＦＣ Porto", want: "fcporto"},
		{name: "non-latin dropped", input: "Зенит Zenit", want: "zenit"},
		{name: "only symbols", input: "-- & ..", want: ""},
		{name: "tabs and newlines", input: "\tReal\nMadrid\r", want: "realmadrid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_CaseAccentSpaceInsensitive(t *testing.T) {
	inputs := []string{"Gérone", "gerone", "GERONE", " Gé-ro ne "}
	for _, in := range inputs {
		if got := Normalize(in); got != "gerone" {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, "gerone")
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Gérone",
		"Manchester United F.C.",
		"Paris Saint-Germain",
		"Atlético de Madrid",
		"Fußball",
		"ＡＢＣ 123",
		"日本代表",
		"São Paulo / Brasil",
		"   ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_Concurrent(t *testing.T) {
	inputs := map[string]string{
		"Gérone":                   "gerone",
		"Atlético Madrid":          "atleticomadrid",
		"Borussia Mönchengladbach": "borussiamonchengladbach",
		"ＦＣ Köln":                  "fckoln",
		"Fußball Club":             "fussballclub",
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				for in, want := range inputs {
					if got := Normalize(in); got != want {
						select {
						case errs <- in + " -> " + got:
						default:
						}
						return
					}
					Slug(in)
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Errorf("concurrent Normalize: %s", e)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "AC Milan", want: "ac-milan"},
		{input: "  Atlético de Madrid  ", want: "atletico-de-madrid"},
		{input: "Brighton & Hove Albion", want: "brighton-hove-albion"},
		{input: "--Inter--", want: "inter"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := Slug(tt.input); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "premier league", want: "Premier League"},
		{input: "  serie   a ", want: "Serie A"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := Title(tt.input); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
