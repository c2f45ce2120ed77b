package dictionary

import (
	"testing"

	"github.com/starford/glosa/internal/models"
)

func TestCleanDescription(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{"1. mover algo. Sin.: desplazar Ant.: fijar", "mover algo"},
		{"2. m. Animal doméstico. Ant.: gato", "m. Animal doméstico"},
		{"  3. Lugar con árboles.  ", "Lugar con árboles"},
		{"Sin número ni marcas", "Sin número ni marcas"},
		{"12. Ir deprisa. Sin.: correr, volar.", "Ir deprisa"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CleanDescription(c.raw); got != c.want {
			t.Errorf("CleanDescription(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestCleanEntryKeepsRaw(t *testing.T) {
	raw := "1. mover algo. Sin.: desplazar"
	e := &models.Entry{Word: "mover", Meanings: []models.Meaning{{
		Senses: []models.Sense{
			{Raw: raw, Description: raw},
			{Description: "2. cambiar de sitio."},
		},
	}}}
	cleanEntry(e)

	s := e.Meanings[0].Senses
	if s[0].Raw != raw {
		t.Errorf("raw modified: %q", s[0].Raw)
	}
	if s[0].Description != "mover algo" {
		t.Errorf("description = %q", s[0].Description)
	}
	if s[1].Description != "cambiar de sitio" {
		t.Errorf("description without raw = %q", s[1].Description)
	}
	if s[0].Synonyms == nil || s[0].Antonyms == nil {
		t.Error("synonym/antonym lists should be non-nil")
	}
}
