package catalog

import (
	"regexp"
	"strings"
)

// MentionKind classifies a user utterance.
type MentionKind int

const (
	// MentionSpecific means the utterance names a catalog recipe.
	MentionSpecific MentionKind = iota
	// MentionGeneric means the utterance asks for a suggestion.
	MentionGeneric
	// MentionContextual means the utterance refers to earlier turns and
	// must be resolved from conversation history.
	MentionContextual
)

func (k MentionKind) String() string {
	switch k {
	case MentionSpecific:
		return "specific"
	case MentionGeneric:
		return "generic"
	default:
		return "contextual"
	}
}

// Mention is the result of classifying an utterance.
type Mention struct {
	Kind MentionKind
	// Name is set only for MentionSpecific.
	Name string
}

// genericPatterns detect "suggest something" style requests. The list is
// ordered and heuristic; keep it data-driven so it can be tuned without
// touching the matcher.
var genericPatterns = compilePatterns([]string{
	`consiglia`, `suggeris`, `propon`, `cosa mi`, `che dolce`,
	`un dolce`, `qualcosa di`, `dimmi un`, `raccontami`,
	`parlami di un`, `a tuo piacimento`, `scegli tu`, `decidi tu`,
	`sorprendimi`, `qualche idea`, `non so cosa`, `indeciso`,
})

func compilePatterns(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + expr)
	}

	return out
}

// minKeywordLen is the threshold above which a single word of an entry
// name is enough to match. Names of at most this length ("Babà") match
// only by full substring containment.
const minKeywordLen = 4

// Detect classifies utterance against entries. Entries are scanned in
// order and the first match wins: either the normalized utterance
// contains the whole normalized name, or it contains a single
// whitespace-delimited word of the name longer than four characters.
func Detect(utterance string, entries []Entry) Mention {
	norm := Normalize(utterance)

	for _, e := range entries {
		nameNorm := Normalize(e.Name)
		if strings.Contains(norm, nameNorm) {
			return Mention{Kind: MentionSpecific, Name: e.Name}
		}

		for _, word := range strings.Fields(nameNorm) {
			if len([]rune(word)) > minKeywordLen && strings.Contains(norm, word) {
				return Mention{Kind: MentionSpecific, Name: e.Name}
			}
		}
	}

	for _, p := range genericPatterns {
		if p.MatchString(utterance) {
			return Mention{Kind: MentionGeneric}
		}
	}

	return Mention{Kind: MentionContextual}
}
