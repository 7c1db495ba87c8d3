package model

import "eventbot/internal/utils"

// Category is the closed set of event categories. Values are the stored
// slugs; display labels live in categoryLabels.
type Category string

const (
	CategoryMusic       Category = "musica"
	CategorySport       Category = "deporte"
	CategoryCultural    Category = "cultural"
	CategoryGastronomy  Category = "gastronomia"
	CategoryEducational Category = "educativo"
	CategoryReligious   Category = "religioso"
	CategoryFair        Category = "feria"
	CategoryTheater     Category = "teatro"
	CategoryDance       Category = "danza"
	CategoryOther       Category = "otro"
)

var categoryLabels = map[Category]string{
	CategoryMusic:       "Música",
	CategorySport:       "Deporte",
	CategoryCultural:    "Cultural",
	CategoryGastronomy:  "Gastronomía",
	CategoryEducational: "Educativo",
	CategoryReligious:   "Religioso",
	CategoryFair:        "Feria",
	CategoryTheater:     "Teatro",
	CategoryDance:       "Danza",
	CategoryOther:       "Otro",
}

// categoryAliases maps common user phrasings (already normalized) onto the
// canonical slug, so a model answering "conciertos" still hits the enum.
var categoryAliases = map[string]Category{
	"concierto":    CategoryMusic,
	"conciertos":   CategoryMusic,
	"deportes":     CategorySport,
	"deportivo":    CategorySport,
	"cultura":      CategoryCultural,
	"gastronomico": CategoryGastronomy,
	"comida":       CategoryGastronomy,
	"educacion":    CategoryEducational,
	"religion":     CategoryReligious,
	"ferias":       CategoryFair,
	"obra":         CategoryTheater,
	"baile":        CategoryDance,
}

// Valid reports whether c is one of the known slugs.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human-readable name for c, falling back to the raw slug.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParseCategory resolves free-form text to a canonical category. Matching is
// case- and accent-insensitive and accepts a few common synonyms.
func ParseCategory(s string) (Category, bool) {
	n := utils.NormalizeText(s)
	if n == "" {
		return "", false
	}
	if c := Category(n); c.Valid() {
		return c, true
	}
	if c, ok := categoryAliases[n]; ok {
		return c, true
	}
	return "", false
}
