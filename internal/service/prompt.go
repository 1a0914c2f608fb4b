package service

import (
	"fmt"
	"strings"

	"github.com/crea-eci/azzurra/internal/catalog"
	"github.com/crea-eci/azzurra/internal/models"
)

// personaPrompt is the fixed persona and style block. Replies are read
// aloud, so the format rules forbid markup and keep answers short.
const personaPrompt = `## PERSONA
Mi chiamo Azzurra e sono la tua guida virtuale nel mondo della tradizione dolciaria italiana. Parlo in modo caldo e accogliente, come una nonna che racconta storie di famiglia.

## ISTRUZIONI
1. Quando l'utente chiede di una ricetta specifica, presenta TUTTE le versioni disponibili nel contesto
2. Specifica SEMPRE quante versioni hai e da quali ricettari provengono
3. Chiedi quale versione preferisce esplorare
4. Quando dai ingredienti/procedimento, specifica SEMPRE il ricettario e l'anno
5. Per le calorie, usa SOLO i dati nel contesto - MAI inventare

## VERSIONI DISPONIBILI
Le ricette possono avere versioni da questi ricettari:
- Accademia Italiana della Cucina (1953)
- La Scienza in Cucina di Pellegrino Artusi (1891)
- Il Cucchiaio d'Argento (1959 e 2020)
- Il Talismano della Felicità di Ada Boni (1931 e 1999)
- Gualtiero Marchesi (2015)

## FORMATO
- Risposte brevi e naturali (max 3-4 frasi)
- NO asterischi, NO emoji, NO elenchi puntati
- Linguaggio parlato (le risposte vengono lette ad alta voce)`

// noRecipeMarker opens the context block used when retrieval returned
// nothing; the model is told to say so instead of improvising.
const noRecipeMarker = "## NESSUNA RICETTA TROVATA"

// SystemPrompt returns the full system prompt: persona, catalog
// restriction, and the turn-specific context block.
func SystemPrompt(contextBlock string) string {
	var b strings.Builder

	b.WriteString(personaPrompt)
	b.WriteString("\n\n## CATALOGO\nConosco SOLO queste ricette: ")
	b.WriteString(strings.Join(catalog.Names(), ", "))
	b.WriteString(".\nSe chiedono altro, dì gentilmente che non hai quella ricetta.")
	b.WriteString(contextBlock)

	return b.String()
}

// FormatRecipeContext renders retrieved recipe versions into the
// prompt-injectable context block.
//
// The calorie section partitions versions into "has a calorie value"
// and "has none" so the model can answer "this version has no calorie
// data, but version X reports Y" instead of averaging or inventing
// figures across versions. Keep the partition: without it the model
// fabricates calorie numbers for versions that never had any.
func FormatRecipeContext(versions []models.RecipeVersion, queriedName string) string {
	if len(versions) == 0 {
		return fmt.Sprintf("\n\n%s\nNon ho trovato %q nel database. Rispondi che non hai informazioni su questa ricetta.",
			noRecipeMarker, queriedName)
	}

	cookbooks := make([]string, len(versions))

	var withCalories, withoutCalories []models.RecipeVersion

	for i, v := range versions {
		cookbooks[i] = v.Cookbook

		if v.HasCalories() {
			withCalories = append(withCalories, v)
		} else {
			withoutCalories = append(withoutCalories, v)
		}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "\n\n## RICETTA: %s\n", strings.ToUpper(queriedName))
	fmt.Fprintf(&b, "Ho trovato %d versioni da questi ricettari: %s\n", len(versions), strings.Join(cookbooks, ", "))

	if len(withCalories) == 0 {
		b.WriteString("Nessuna versione ha calorie disponibili.\n")
	} else {
		b.WriteString("CALORIE DISPONIBILI:\n")

		for _, v := range withCalories {
			fmt.Fprintf(&b, "- %s: %.0f kcal\n", v.Cookbook, *v.Calories)
		}

		if len(withoutCalories) > 0 {
			b.WriteString("SENZA DATI CALORICI:\n")

			for _, v := range withoutCalories {
				fmt.Fprintf(&b, "- %s\n", v.Cookbook)
			}
		}
	}

	fmt.Fprintf(&b, "\nIMPORTANTE: Presenta TUTTE le %d versioni disponibili e chiedi quale preferisce!\n", len(versions))

	for _, v := range versions {
		fmt.Fprintf(&b, "\n### %s - %s\n", v.Title, v.Cookbook)
		fmt.Fprintf(&b, "Ingredienti: %s\n", orUnavailable(v.Ingredients))
		fmt.Fprintf(&b, "Procedimento: %s\n", orUnavailable(v.Procedure))
		fmt.Fprintf(&b, "Storia: %s\n", orUnavailable(v.HistoryNote))

		if v.HasCalories() {
			fmt.Fprintf(&b, "Calorie: %.0f kcal\n", *v.Calories)
		} else {
			b.WriteString("Calorie: Non disponibili\n")
		}

		if v.Servings != nil {
			fmt.Fprintf(&b, "Persone: %d\n", *v.Servings)
		} else {
			b.WriteString("Persone: Non specificato\n")
		}
	}

	return b.String()
}

func orUnavailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Non disponibile"
	}

	return s
}

// FormatSuggestionContext wraps a recipe context block with the
// generic-request instruction: propose exactly this suggestion.
func FormatSuggestionContext(suggestion string, versions []models.RecipeVersion) string {
	var b strings.Builder

	b.WriteString("\n\n## SUGGERIMENTO PER RICHIESTA GENERICA\n")
	fmt.Fprintf(&b, "L'utente ha chiesto un consiglio generico. Proponi %q in modo naturale e invitante.\n", suggestion)
	b.WriteString("Presenta brevemente il dolce e le sue origini, poi chiedi se vuole saperne di più.")
	b.WriteString(FormatRecipeContext(versions, suggestion))

	return b.String()
}

// contextualBlock instructs the model to resolve the reference from the
// conversation history, asking for clarification when ambiguous.
const contextualBlock = `

## DOMANDA DI CONTESTO
L'utente sta facendo una domanda che si riferisce alla conversazione precedente.
Usa la cronologia dei messaggi per capire di quale ricetta sta parlando.
Se non è chiaro, chiedi gentilmente di specificare.`

// deferredBlock is appended when the message arrived while the avatar
// was still speaking (deferred follow-up from the speech turn buffer).
const deferredBlock = `

## NOTA
Questo messaggio è arrivato mentre stavi ancora parlando: potrebbe riferirsi alla risposta appena data o interromperla.`
