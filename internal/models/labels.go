package models

var categoryLabels = map[string]string{
	"noun":         "Sustantivo",
	"verb":         "Verbo",
	"adjective":    "Adjetivo",
	"adverb":       "Adverbio",
	"pronoun":      "Pronombre",
	"article":      "Artículo",
	"preposition":  "Preposición",
	"conjunction":  "Conjunción",
	"interjection": "Interjección",
}

var usageLabels = map[string]string{
	"common":     "Uso común",
	"rare":       "Uso poco común",
	"outdated":   "Anticuado",
	"colloquial": "Coloquial",
	"obsolete":   "En desuso",
}

// CategoryLabel returns the Spanish display label for a grammatical category
// code, or the code itself when it is unknown.
func CategoryLabel(category string) string {
	if l, ok := categoryLabels[category]; ok {
		return l
	}
	return category
}

// UsageLabel returns the Spanish display label for a usage register code,
// or the code itself when it is unknown.
func UsageLabel(usage string) string {
	if l, ok := usageLabels[usage]; ok {
		return l
	}
	return usage
}
