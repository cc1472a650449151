package services

import (
	"os"
	"path/filepath"
	"testing"
)

func writeQuizFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quizes.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validQuizYAML = `questions:
  - id: side
    type: single_choice
    text: "Яка сторона?"
    options: ["Ліва", "Права"]
  - id: duration
    type: text_input
    text: "Як давно болить?"
    placeholder: "2 тижні"
`

func TestLoadCatalogValidFile(t *testing.T) {
	path := writeQuizFile(t, validQuizYAML)
	c := LoadCatalog("uk", map[string]string{"uk": path})

	if c.Count("uk") != 2 {
		t.Fatalf("Count = %d, want 2", c.Count("uk"))
	}

	q, ok := c.ByIndex("uk", 0)
	if !ok || q.ID != "side" {
		t.Errorf("ByIndex(0) = %+v, %v", q, ok)
	}
	if _, ok := c.ByIndex("uk", 2); ok {
		t.Error("ByIndex out of range must report false")
	}

	if i, ok := c.IndexOf("uk", "duration"); !ok || i != 1 {
		t.Errorf("IndexOf(duration) = %d, %v", i, ok)
	}
	if _, ok := c.ByID("uk", "missing"); ok {
		t.Error("ByID for unknown id must report false")
	}
}

func TestLoadCatalogRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"duplicate id", "questions:\n  - id: a\n    type: text_input\n    text: x\n  - id: a\n    type: text_input\n    text: y\n"},
		{"choice without options", "questions:\n  - id: a\n    type: single_choice\n    text: x\n"},
		{"unknown type", "questions:\n  - id: a\n    type: multi_choice\n    text: x\n"},
		{"empty id", "questions:\n  - id: \"\"\n    type: text_input\n    text: x\n"},
		{"no questions", "questions: []\n"},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeQuizFile(t, tt.content)
			c := LoadCatalog("uk", map[string]string{"uk": path})
			if c.Count("uk") != 0 {
				t.Errorf("bad file produced %d questions, want an unusable language", c.Count("uk"))
			}
		})
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	c := LoadCatalog("uk", map[string]string{"uk": filepath.Join(t.TempDir(), "absent.yaml")})
	if c.Count("uk") != 0 {
		t.Error("missing file must leave the language unusable")
	}
}

func TestLoadCatalogDegradesDivergentLanguage(t *testing.T) {
	ukPath := writeQuizFile(t, validQuizYAML)
	dePath := writeQuizFile(t, `questions:
  - id: side
    type: single_choice
    text: "Welche Seite?"
    options: ["Links", "Rechts"]
  - id: how_long
    type: text_input
    text: "Seit wann?"
`)

	c := LoadCatalog("uk", map[string]string{"uk": ukPath, "de": dePath})
	if c.Count("uk") != 2 {
		t.Fatalf("default language damaged: Count = %d", c.Count("uk"))
	}
	if c.Count("de") != 0 {
		t.Error("language with diverging id sequence must be degraded")
	}
}

func TestLoadCatalogKeepsAlignedLanguages(t *testing.T) {
	ukPath := writeQuizFile(t, validQuizYAML)
	dePath := writeQuizFile(t, `questions:
  - id: side
    type: single_choice
    text: "Welche Seite?"
    options: ["Links", "Rechts"]
  - id: duration
    type: text_input
    text: "Seit wann bestehen die Schmerzen?"
`)

	c := LoadCatalog("uk", map[string]string{"uk": ukPath, "de": dePath})
	if c.Count("de") != c.Count("uk") {
		t.Fatalf("aligned language degraded: de=%d uk=%d", c.Count("de"), c.Count("uk"))
	}

	uk, _ := c.ByIndex("uk", 0)
	de, _ := c.ByIndex("de", 0)
	if uk.ID != de.ID {
		t.Errorf("id order differs: %s vs %s", uk.ID, de.ID)
	}
	if uk.Text == de.Text {
		t.Error("languages must keep their own question text")
	}
}
