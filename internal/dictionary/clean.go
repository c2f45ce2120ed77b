package dictionary

import (
	"regexp"
	"strings"

	"github.com/starford/glosa/internal/models"
)

const (
	synonymMarker = "Sin.:"
	antonymMarker = "Ant.:"
)

var senseNumberRe = regexp.MustCompile(`^\d+\.\s`)

// CleanDescription turns an authority sense text into a display gloss:
// inline synonym and antonym lists are cut off, the leading "N. " sense
// number is removed, and surrounding space plus one trailing period are trimmed.
func CleanDescription(raw string) string {
	s, _, _ := strings.Cut(raw, synonymMarker)
	s, _, _ = strings.Cut(s, antonymMarker)
	s = strings.TrimSpace(s)
	s = senseNumberRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")
	return strings.TrimSpace(s)
}

// cleanEntry rewrites every sense description from its raw text. Raw is left
// untouched; when an authority omits raw, the existing description is cleaned.
func cleanEntry(e *models.Entry) {
	for i := range e.Meanings {
		senses := e.Meanings[i].Senses
		for j := range senses {
			src := senses[j].Raw
			if src == "" {
				src = senses[j].Description
			}
			senses[j].Description = CleanDescription(src)
			if senses[j].Synonyms == nil {
				senses[j].Synonyms = []string{}
			}
			if senses[j].Antonyms == nil {
				senses[j].Antonyms = []string{}
			}
		}
	}
	if e.Meanings == nil {
		e.Meanings = []models.Meaning{}
	}
}
