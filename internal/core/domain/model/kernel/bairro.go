package kernel

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// bairroNormalizer decomposes characters and strips combining marks, so
// "São João" and "sao joao" normalize to the same key.
var bairroNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeBairroName converts a free-text bairro name into its canonical lookup
// form: diacritics stripped, lowercased, whitespace collapsed to single spaces and
// trimmed. Bairro names arrive as free text from commerce requests; every matrix
// and repository lookup goes through this form.
func NormalizeBairroName(name string) string {
	stripped, _, err := transform.String(bairroNormalizer, name)
	if err != nil {
		stripped = name
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
