package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/crea-eci/azzurra/internal/models"
)

// calorieMentionRe finds calorie figures in a reply ("220 calorie",
// "220 kcal", "220 cal").
var calorieMentionRe = regexp.MustCompile(`(?i)\b(\d{2,4})\s*(kcal|calorie|cal)\b`)

// calorieTolerance is the relative tolerance against retrieved values.
const calorieTolerance = 0.05

// fabricationPatterns detect dish-like content in a reply produced with
// zero retrieved records. Ordered and data-driven, like the
// generic-request patterns: precision is heuristic and tunable.
var fabricationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ingredienti`),
	regexp.MustCompile(`(?i)procedimento`),
	regexp.MustCompile(`(?i)preparazione`),
	regexp.MustCompile(`(?i)la ricetta (del|della|dei|delle)`),
	regexp.MustCompile(`(?i)\bkcal\b`),
}

// safeFallbackReply replaces a likely-fabricated reply wholesale. The
// one case where the system overrides the model's output entirely.
const safeFallbackReply = "Mi dispiace, non ho questa ricetta nel mio archivio. Posso raccontarti uno dei dolci che conosco, se vuoi."

// CalorieMismatch describes a calorie figure in the reply that is not
// within tolerance of any retrieved value.
type CalorieMismatch struct {
	Mentioned  float64
	Candidates []float64
}

func (m CalorieMismatch) String() string {
	return fmt.Sprintf("mentioned %.0f, candidates %v", m.Mentioned, m.Candidates)
}

// ValidateCalories checks every calorie figure in reply against the
// calorie values of the retrieved versions.
//
// A figure within 5% of some retrieved value passes. Out-of-tolerance
// figures are rewritten to the correct value only when exactly one
// retrieved version carries a calorie value (single-candidate
// auto-correction). With multiple candidates the mismatch is returned
// for logging and the reply passes unchanged: the right correction is
// ambiguous and deliberately left unresolved.
func ValidateCalories(reply string, versions []models.RecipeVersion) (string, []CalorieMismatch) {
	var candidates []float64

	for _, v := range versions {
		if v.HasCalories() {
			candidates = append(candidates, *v.Calories)
		}
	}

	if len(candidates) == 0 {
		return reply, nil
	}

	var mismatches []CalorieMismatch

	corrected := calorieMentionRe.ReplaceAllStringFunc(reply, func(match string) string {
		sub := calorieMentionRe.FindStringSubmatch(match)

		mentioned, err := strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return match
		}

		for _, c := range candidates {
			if withinTolerance(mentioned, c) {
				return match
			}
		}

		if len(candidates) == 1 {
			return strings.Replace(match, sub[1], strconv.FormatFloat(candidates[0], 'f', -1, 64), 1)
		}

		mismatches = append(mismatches, CalorieMismatch{Mentioned: mentioned, Candidates: candidates})

		return match
	})

	return corrected, mismatches
}

func withinTolerance(mentioned, actual float64) bool {
	diff := mentioned - actual
	if diff < 0 {
		diff = -diff
	}

	return diff <= calorieTolerance*actual
}

// LooksFabricated reports whether a reply produced with zero retrieved
// records still talks about dish content, which means the model ignored
// the no-recipe instruction.
func LooksFabricated(reply string) bool {
	for _, p := range fabricationPatterns {
		if p.MatchString(reply) {
			return true
		}
	}

	return false
}
