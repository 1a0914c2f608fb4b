// Package catalog holds the static recipe catalog and the utterance
// classification logic built on top of it.
package catalog

import "strings"

// accentFolder maps accented Latin vowels to their unaccented forms.
// The same folding must be applied on both sides of any substring
// comparison; the recipe titles in the store carry accents ("Babà",
// "Tiramisù") while transcripts often do not.
var accentFolder = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ã", "a",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ò", "o", "ó", "o", "ô", "o", "õ", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
)

// Normalize lowercases s and folds accented vowels. It is total and
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return accentFolder.Replace(strings.ToLower(s))
}
