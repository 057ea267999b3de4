package llm

import (
	"strings"
	"testing"

	"github.com/shraddhagadale/SpendSense/internal/categories"
)

func TestBuildCategoryPromptContainsVocabulary(t *testing.T) {
	cats := categories.All()
	prompt := BuildCategoryPrompt("NETFLIX.COM 1-866-579-7172 CA", 15.49, cats)

	for _, cat := range cats {
		if !strings.Contains(prompt, cat) {
			t.Errorf("prompt missing category %q", cat)
		}
	}
	if !strings.Contains(prompt, "NETFLIX.COM 1-866-579-7172 CA") {
		t.Error("prompt missing transaction description")
	}
	if !strings.Contains(prompt, "15.49") {
		t.Error("prompt missing transaction amount")
	}
}

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Grocery", "Grocery"},
		{"surrounding whitespace", "  Grocery \n", "Grocery"},
		{"quoted", `"Grocery"`, "Grocery"},
		{"labeled", "Category: Grocery", "Grocery"},
		{"fenced", "```\nGrocery\n```", "Grocery"},
		{"fenced with language", "```text\nGrocery\n```", "Grocery"},
		{"multi line keeps first", "Grocery\nBecause it is a supermarket.", "Grocery"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanAnswer(tt.raw); got != tt.want {
				t.Errorf("cleanAnswer(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
