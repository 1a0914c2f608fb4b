package catalog

import "math/rand/v2"

// Category tags a catalog entry with the family it belongs to.
type Category string

// Catalog categories. Savory entries are excluded from generic suggestions.
const (
	CategoryBiscuit      Category = "biscotti"
	CategorySpoonDessert Category = "dolci al cucchiaio"
	CategoryBaked        Category = "dolci al forno"
	CategoryFried        Category = "dolci fritti"
	CategoryFestive      Category = "dolci festivi"
	CategoryRegional     Category = "dolci regionali"
	CategoryOther        Category = "altri"
	CategorySavory       Category = "salati"
)

// Entry is one catalog recipe. The catalog is immutable and loaded at
// process start.
type Entry struct {
	Name     string
	Category Category
}

// Entries is the full catalog in declaration order. Order matters: the
// mention detector returns the first matching entry, so two entries with
// overlapping keywords resolve to whichever is declared first.
var Entries = []Entry{
	{"Amaretti", CategoryBiscuit},
	{"Cantuccini Toscani IGP", CategoryBiscuit},
	{"Ricciarelli di Siena IGP", CategoryBiscuit},
	{"Savoiardi", CategoryBiscuit},
	{"Brigidini", CategoryBiscuit},
	{"Cavallucci di Siena", CategoryBiscuit},
	{"Fave dei morti", CategoryBiscuit},
	{"Biancomangiare", CategorySpoonDessert},
	{"Tiramisù", CategorySpoonDessert},
	{"Zabaione", CategorySpoonDessert},
	{"Zuppa inglese", CategorySpoonDessert},
	{"Budino al cioccolato", CategorySpoonDessert},
	{"Budino di semolino", CategorySpoonDessert},
	{"Panna cotta", CategorySpoonDessert},
	{"Castagnaccio", CategoryBaked},
	{"Certosino", CategoryBaked},
	{"Migliaccio", CategoryBaked},
	{"Pan dolce alle noci", CategoryBaked},
	{"Panforte di Siena IGP", CategoryBaked},
	{"Presnitz", CategoryBaked},
	{"Crostata di ricotta", CategoryBaked},
	{"Crostata con confettura di frutta", CategoryBaked},
	{"Pastiera napoletana", CategoryBaked},
	{"Strudel di mele", CategoryBaked},
	{"Torta sabbiosa", CategoryBaked},
	{"Torta Margherita", CategoryBaked},
	{"Cicerchiata", CategoryFried},
	{"Castagnole", CategoryFried},
	{"Chiacchiere o frappe", CategoryFried},
	{"Frittelle di riso", CategoryFried},
	{"Frittelle di mele", CategoryFried},
	{"Crema fritta", CategoryFried},
	{"Babà", CategoryFried},
	{"Cannoli", CategoryFried},
	{"Sfogliatelle napoletane", CategoryFried},
	{"Panettone", CategoryFestive},
	{"Torrone", CategoryFestive},
	{"Croccante", CategoryFestive},
	{"Pinoccate", CategoryFestive},
	{"Cassata siciliana", CategoryRegional},
	{"Maritozzi", CategoryRegional},
	{"Pesche ripiene alla piemontese", CategoryRegional},
	{"Pere con il vino rosso", CategoryOther},
	{"Gelato alla crema", CategoryOther},
	{"Granita di caffè con panna", CategoryOther},
	{"Cioccolatini alle mandorle", CategoryOther},
	{"Bruschetta", CategorySavory},
	{"Calzone alla napoletana", CategorySavory},
	{"Panzerotti fritti", CategorySavory},
	{"Piadina Romagnola IGP", CategorySavory},
	{"Pizza napoletana STG", CategorySavory},
	{"Torta di patate", CategorySavory},
	{"Torta Pasqualina con spinaci", CategorySavory},
}

// Names returns all catalog names in declaration order.
func Names() []string {
	out := make([]string, len(Entries))
	for i, e := range Entries {
		out[i] = e.Name
	}

	return out
}

// SuggestDessert picks a random dessert name, excluding savory entries
// and any name in exclude. Exclusion is accent and case insensitive.
// Returns "" only when every dessert is excluded.
func SuggestDessert(exclude map[string]struct{}) string {
	excluded := make(map[string]struct{}, len(exclude))
	for name := range exclude {
		excluded[Normalize(name)] = struct{}{}
	}

	var candidates []string

	for _, e := range Entries {
		if e.Category == CategorySavory {
			continue
		}

		if _, seen := excluded[Normalize(e.Name)]; seen {
			continue
		}

		candidates = append(candidates, e.Name)
	}

	if len(candidates) == 0 {
		return ""
	}

	return candidates[rand.IntN(len(candidates))]
}
