package models

import "testing"

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel("verb"); got != "Verbo" {
		t.Errorf("CategoryLabel(verb) = %q", got)
	}
	if got := CategoryLabel("female"); got != "female" {
		t.Errorf("unknown category should pass through, got %q", got)
	}
}

func TestUsageLabel(t *testing.T) {
	if got := UsageLabel("colloquial"); got != "Coloquial" {
		t.Errorf("UsageLabel(colloquial) = %q", got)
	}
	if got := UsageLabel(""); got != "" {
		t.Errorf("empty usage = %q", got)
	}
}
