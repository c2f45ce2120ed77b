package inbox

import "testing"

func TestParseDocument_FrontmatterTitle(t *testing.T) {
	doc := ParseDocument([]byte("---\ntitle: Paseo\ntags: [x]\n---\n# Otro\nEl perro corre.\n"))
	if doc.Title == nil || *doc.Title != "Paseo" {
		t.Errorf("title = %v, want Paseo", doc.Title)
	}
	if doc.Body != "# Otro\nEl perro corre.\n" {
		t.Errorf("body = %q", doc.Body)
	}
}

func TestParseDocument_HeadingTitle(t *testing.T) {
	doc := ParseDocument([]byte("# Mi día\nFui al parque.\n"))
	if doc.Title == nil || *doc.Title != "Mi día" {
		t.Errorf("title = %v, want Mi día", doc.Title)
	}
	if doc.Body != "# Mi día\nFui al parque.\n" {
		t.Errorf("body = %q", doc.Body)
	}
}

func TestParseDocument_PlainText(t *testing.T) {
	doc := ParseDocument([]byte("solo texto"))
	if doc.Title != nil {
		t.Errorf("title = %q, want nil", *doc.Title)
	}
	if doc.Body != "solo texto" {
		t.Errorf("body = %q", doc.Body)
	}
}

func TestParseDocument_InvalidYAMLFallback(t *testing.T) {
	input := "---\n: invalid: yaml: {{{\n---\nCuerpo\n"
	doc := ParseDocument([]byte(input))
	if doc.Body != input {
		t.Errorf("invalid frontmatter should leave the whole input as body, got %q", doc.Body)
	}
}

func TestParseDocument_UnclosedFrontmatter(t *testing.T) {
	input := "---\ntitle: x\nsin cierre"
	if doc := ParseDocument([]byte(input)); doc.Body != input || doc.Title != nil {
		t.Errorf("doc = %+v", doc)
	}
}

func TestEligible(t *testing.T) {
	cases := map[string]bool{
		"nota.md":       true,
		"nota.TXT":      true,
		"dir/otra.txt":  true,
		"foto.png":      false,
		".oculto.md":    false,
		"borrador.md~":  false,
		"sin_extension": false,
	}
	for path, want := range cases {
		if got := Eligible(path); got != want {
			t.Errorf("Eligible(%q) = %v, want %v", path, got, want)
		}
	}
}
