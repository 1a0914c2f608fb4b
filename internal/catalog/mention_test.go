package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("lowercases and folds accents", func(t *testing.T) {
		assert.Equal(t, "tiramisu", Normalize("Tiramisù"))
		assert.Equal(t, "baba", Normalize("Babà"))
		assert.Equal(t, "granita di caffe con panna", Normalize("Granita di Caffè con panna"))
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, s := range []string{"Tiramisù", "PÈRCHÉ", "già visto", "plain ascii"} {
			once := Normalize(s)
			assert.Equal(t, once, Normalize(once))
		}
	})

	t.Run("total on empty input", func(t *testing.T) {
		assert.Equal(t, "", Normalize(""))
	})
}

func TestDetect(t *testing.T) {
	t.Run("full name match", func(t *testing.T) {
		m := Detect("Parlami del tiramisù", Entries)
		require.Equal(t, MentionSpecific, m.Kind)
		assert.Equal(t, "Tiramisù", m.Name)
	})

	t.Run("single long keyword matches", func(t *testing.T) {
		// "pastiera" is one word of "Pastiera napoletana", longer than 4 runes.
		m := Detect("vorrei la pastiera", Entries)
		require.Equal(t, MentionSpecific, m.Kind)
		assert.Equal(t, "Pastiera napoletana", m.Name)
	})

	t.Run("short names match only by full containment", func(t *testing.T) {
		// "Babà" normalizes to 4 runes, so the relaxed word check never
		// applies; a partial fragment must not match.
		m := Detect("mi piace il bab", Entries)
		assert.NotEqual(t, MentionSpecific, m.Kind)

		m = Detect("raccontami del babà", Entries)
		require.Equal(t, MentionSpecific, m.Kind)
		assert.Equal(t, "Babà", m.Name)
	})

	t.Run("accent-insensitive", func(t *testing.T) {
		m := Detect("parlami del tiramisu", Entries)
		require.Equal(t, MentionSpecific, m.Kind)
		assert.Equal(t, "Tiramisù", m.Name)
	})

	t.Run("first declared entry wins on overlapping keywords", func(t *testing.T) {
		crafted := []Entry{
			{Name: "Crostata di ricotta", Category: CategoryBaked},
			{Name: "Cannoli di ricotta", Category: CategoryFried},
		}
		m := Detect("qualcosa con la ricotta", crafted)
		require.Equal(t, MentionSpecific, m.Kind)
		assert.Equal(t, "Crostata di ricotta", m.Name)

		reversed := []Entry{crafted[1], crafted[0]}
		m = Detect("qualcosa con la ricotta", reversed)
		require.Equal(t, MentionSpecific, m.Kind)
		assert.Equal(t, "Cannoli di ricotta", m.Name)
	})

	t.Run("generic request", func(t *testing.T) {
		for _, utterance := range []string{
			"Consigliami qualcosa",
			"Sorprendimi!",
			"non so cosa scegliere",
		} {
			m := Detect(utterance, Entries)
			assert.Equal(t, MentionGeneric, m.Kind, "utterance %q", utterance)
		}
	})

	t.Run("contextual fallback", func(t *testing.T) {
		m := Detect("e quante calorie ha?", Entries)
		assert.Equal(t, MentionContextual, m.Kind)
	})
}

func TestSuggestDessert(t *testing.T) {
	t.Run("never suggests savory or discussed recipes", func(t *testing.T) {
		exclude := map[string]struct{}{"Panettone": {}}

		savory := map[string]struct{}{}
		for _, e := range Entries {
			if e.Category == CategorySavory {
				savory[e.Name] = struct{}{}
			}
		}

		for range 200 {
			name := SuggestDessert(exclude)
			require.NotEmpty(t, name)
			assert.NotEqual(t, "Panettone", name)
			_, isSavory := savory[name]
			assert.False(t, isSavory, "suggested savory recipe %q", name)
		}
	})

	t.Run("empty when everything is excluded", func(t *testing.T) {
		exclude := map[string]struct{}{}
		for _, e := range Entries {
			exclude[e.Name] = struct{}{}
		}

		assert.Empty(t, SuggestDessert(exclude))
	})
}
