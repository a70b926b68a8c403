package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// dotless and dotted i do not decompose under NFD.
var turkishI = strings.NewReplacer("ı", "i", "İ", "I")

// Generate creates a URL-friendly slug from the given name.
// Diacritics are stripped, so Turkish letters map to their ASCII base.
//
// Examples:
//   - "Kadın Giyim" → "kadin-giyim"
//   - "ÇOCUK Ürünleri" → "cocuk-urunleri"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	s := turkishI.Replace(strings.TrimSpace(name))

	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err == nil {
		s = stripped
	}

	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
