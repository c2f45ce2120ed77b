package inbox

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a dropped file split into note fields.
type Document struct {
	Title *string
	Body  string
}

type frontmatter struct {
	Title string `yaml:"title"`
}

// ParseDocument splits optional YAML frontmatter from the body and derives
// the title from frontmatter "title" or the first H1 heading.
func ParseDocument(data []byte) Document {
	fm, body := splitFrontmatter(data)
	doc := Document{Body: body}
	if t := deriveTitle(fm, body); t != "" {
		doc.Title = &t
	}
	return doc
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the body. Missing or invalid frontmatter leaves the whole input as body.
func splitFrontmatter(data []byte) (*frontmatter, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm frontmatter
	if err := yaml.Unmarshal(rest[:idx], &fm); err != nil {
		return nil, string(data)
	}
	return &fm, body
}

func deriveTitle(fm *frontmatter, body string) string {
	if fm != nil {
		if t := strings.TrimSpace(fm.Title); t != "" {
			return t
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
