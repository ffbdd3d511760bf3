package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letters that have no Unicode decomposition to ASCII.
var transliterations = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'đ': "d",
	'ð': "d",
	'ł': "l",
	'ı': "i",
	'þ': "th",
	'ħ': "h",
	'ŧ': "t",
	'ŋ': "n",
}

// Normalize returns the lookup key for raw. It never fails; an empty or
// all-punctuation input yields "".
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range foldString(raw) {
		appendKeyRune(&b, r)
	}
	return b.String()
}

// Slug returns a URL slug for raw ("AC Milan" -> "ac-milan"). Runs of
// characters that are dropped from keys become a single hyphen.
func Slug(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	pending := false
	for _, r := range foldString(raw) {
		if !isKeyRune(r) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('-')
			pending = false
		}
		appendKeyRune(&b, r)
	}
	return b.String()
}

// Title title-cases a display string ("premier league" -> "Premier League").
// It keeps accents and punctuation; only casing and surrounding space change.
func Title(raw string) string {
	raw = strings.Join(strings.Fields(raw), " ")
	if raw == "" {
		return ""
	}
	return cases.Title(language.Und).String(raw)
}

// foldString decomposes compatibility forms (ligatures, fullwidth letters),
// drops the combining marks left behind and lowercases the result. A chain
// carries buffers, so each call builds its own.
func foldString(raw string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, raw)
	if err != nil {
		// transform only fails on invalid state; the raw text is still usable.
		folded = raw
	}
	return strings.ToLower(folded)
}

func appendKeyRune(b *strings.Builder, r rune) {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		b.WriteRune(r)
	default:
		if t, ok := transliterations[r]; ok {
			b.WriteString(t)
		}
	}
}

func isKeyRune(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
		return true
	}
	_, ok := transliterations[r]
	return ok
}
