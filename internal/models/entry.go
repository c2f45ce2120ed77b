package models

// Entry is the definition payload returned by the dictionary authority for one word.
type Entry struct {
	Word     string    `json:"word"`
	Meanings []Meaning `json:"meanings"`
}

// Meaning groups the senses that share an origin.
type Meaning struct {
	Origin       *Origin       `json:"origin,omitempty"`
	Senses       []Sense       `json:"senses"`
	Conjugations *Conjugations `json:"conjugations,omitempty"`
}

// Origin describes the etymology of a meaning.
type Origin struct {
	Raw   string `json:"raw"`
	Type  string `json:"type"`
	Voice string `json:"voice"`
	Text  string `json:"text"`
}

// Sense is a single numbered definition.
//
// Raw keeps the authority's original text, Description holds the cleaned
// display gloss derived from it.
type Sense struct {
	Raw           string   `json:"raw"`
	MeaningNumber int      `json:"meaning_number"`
	Category      string   `json:"category"`
	Usage         string   `json:"usage"`
	Description   string   `json:"description"`
	Synonyms      []string `json:"synonyms"`
	Antonyms      []string `json:"antonyms"`
}

// Conjugations is the verb table attached to verbal meanings.
// Tense tables map a person key (e.g. "singular_first_person") to a form.
type Conjugations struct {
	NonPersonal map[string]string            `json:"non_personal,omitempty"`
	Indicative  map[string]map[string]string `json:"indicative,omitempty"`
	Subjunctive map[string]map[string]string `json:"subjunctive,omitempty"`
	Imperative  map[string]string            `json:"imperative,omitempty"`
}
