package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Run("parses semicolon-delimited rows into header-keyed maps", func(t *testing.T) {
		path := writeTempCSV(t, "Titolo;Ricettario;Anno\nTiramisù;Artusi;1891\nCannoli;Regionale;\n")

		rows, err := readCSV(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "Tiramisù", rows[0]["Titolo"])
		assert.Equal(t, "1891", rows[0]["Anno"])
		assert.Equal(t, "", rows[1]["Anno"])
	})

	t.Run("tolerates ragged rows", func(t *testing.T) {
		path := writeTempCSV(t, "Titolo;Ricettario;Anno\nZabaione;Artusi\n")

		rows, err := readCSV(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		assert.Equal(t, "Artusi", rows[0]["Ricettario"])

		_, ok := rows[0]["Anno"]
		assert.False(t, ok)
	})
}

func TestGroupIngredients(t *testing.T) {
	rows := []map[string]string{
		{"Titolo": "Tiramisù", "IngredienteSpecifico": "Mascarpone", "Quantità": "500", "Unità di misura": "g"},
		{"Titolo": "Tiramisù", "IngredientePrincipale": "Uova", "Quantità": "4"},
		{"Titolo": "Cannoli", "IngredienteSpecifico": "Ricotta"},
		{"Titolo": "", "IngredienteSpecifico": "Zucchero"},
		{"Titolo": "Tiramisù"},
	}

	grouped := groupIngredients(rows)

	assert.Equal(t, []string{"Mascarpone 500 g", "Uova 4"}, grouped["Tiramisù"])
	assert.Equal(t, []string{"Ricotta"}, grouped["Cannoli"])
	assert.Len(t, grouped, 2)
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips tags and collapses whitespace",
			in:   "<p>Montare   le uova</p><br/>con lo zucchero",
			want: "Montare le uova con lo zucchero",
		},
		{
			name: "decodes accented entities",
			in:   "Si pu&ograve; servire gi&agrave; freddo",
			want: "Si può servire già freddo",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanHTML(tt.in))
		})
	}
}

func TestBuildVersion(t *testing.T) {
	row := map[string]string{
		"Titolo":              "Tiramisù",
		"Famiglia":            "Dolci al cucchiaio",
		"Ricettario":          "La scienza in cucina",
		"Anno":                "1891",
		"Procedimento":        "<p>Montare le uova</p>",
		"SchedaAntropologica": "Nato in Veneto",
		"SchedaNutrizionale":  "Ricco di grassi",
		"Calorie":             "420,5",
		"NPersone":            "6",
	}

	v := buildVersion("Tiramisù", row, []string{"Mascarpone 500 g", "Uova 4"})

	assert.Equal(t, "Tiramisù", v.Title)
	assert.Equal(t, "La scienza in cucina", v.Cookbook)
	assert.Equal(t, "Mascarpone 500 g, Uova 4", v.Ingredients)
	assert.Equal(t, "Montare le uova", v.Procedure)

	require.NotNil(t, v.Year)
	assert.Equal(t, 1891, *v.Year)

	require.NotNil(t, v.Calories)
	assert.InDelta(t, 420.5, *v.Calories, 0.001)

	require.NotNil(t, v.Servings)
	assert.Equal(t, 6, *v.Servings)
}

func TestParseFields(t *testing.T) {
	assert.Nil(t, parseIntField(""))
	assert.Nil(t, parseIntField("n/d"))
	assert.Nil(t, parseIntField("0"))

	assert.Nil(t, parseFloatField(""))
	assert.Nil(t, parseFloatField("0"))

	f := parseFloatField("312")
	require.NotNil(t, f)
	assert.InDelta(t, 312.0, *f, 0.001)
}

func TestEmbeddingText(t *testing.T) {
	v := buildVersion("Zabaione", map[string]string{"Famiglia": "Creme"}, []string{"Tuorli 6"})

	text := embeddingText(v)

	assert.Contains(t, text, "Ricetta: Zabaione")
	assert.Contains(t, text, "Ingredienti: Tuorli 6")
	assert.Contains(t, text, "Famiglia: Creme")
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "recipes.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
