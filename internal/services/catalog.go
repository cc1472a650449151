package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionTextInput    QuestionType = "text_input"
	QuestionOptionalText QuestionType = "optional_text"
)

type Question struct {
	ID           string       `yaml:"id"`
	Type         QuestionType `yaml:"type"`
	Text         string       `yaml:"text"`
	Options      []string     `yaml:"options,omitempty"`
	Placeholder  string       `yaml:"placeholder,omitempty"`
	FollowUpText string       `yaml:"follow_up_text,omitempty"`
}

type quizFile struct {
	Questions []Question `yaml:"questions"`
}

// Catalog holds the per-language question lists, loaded once at startup
// and immutable afterwards. Language is selected per call so that two
// participants in different languages never observe each other's setting.
type Catalog struct {
	byLanguage map[string][]Question
	indexByID  map[string]map[string]int
}

// LoadCatalog reads one YAML file per language. A missing or malformed
// file, or a language whose id sequence diverges from the default
// language, degrades that language to an empty (unusable) catalog
// instead of failing the process.
func LoadCatalog(defaultLanguage string, files map[string]string) *Catalog {
	c := &Catalog{
		byLanguage: make(map[string][]Question),
		indexByID:  make(map[string]map[string]int),
	}

	for lang, path := range files {
		questions, err := loadQuizFile(path)
		if err != nil {
			log.Printf("[Catalog] language %s unusable: %v", lang, err)
			questions = nil
		}
		c.byLanguage[lang] = questions
	}

	reference := c.byLanguage[defaultLanguage]
	for lang, questions := range c.byLanguage {
		if lang == defaultLanguage || len(questions) == 0 {
			continue
		}
		if err := sameIDSequence(reference, questions); err != nil {
			log.Printf("[Catalog] language %s diverges from %s: %v", lang, defaultLanguage, err)
			c.byLanguage[lang] = nil
		}
	}

	for lang, questions := range c.byLanguage {
		idx := make(map[string]int, len(questions))
		for i, q := range questions {
			idx[q.ID] = i
		}
		c.indexByID[lang] = idx
		log.Printf("[Catalog] loaded %d questions for language %s", len(questions), lang)
	}

	return c
}

// NewCatalog builds a catalog directly from question lists. Used by tests.
func NewCatalog(byLanguage map[string][]Question) *Catalog {
	c := &Catalog{
		byLanguage: byLanguage,
		indexByID:  make(map[string]map[string]int),
	}
	for lang, questions := range byLanguage {
		idx := make(map[string]int, len(questions))
		for i, q := range questions {
			idx[q.ID] = i
		}
		c.indexByID[lang] = idx
	}
	return c
}

func loadQuizFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var file quizFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(file.Questions) == 0 {
		return nil, errors.New("no questions defined")
	}

	seen := make(map[string]bool, len(file.Questions))
	for _, q := range file.Questions {
		if q.ID == "" {
			return nil, errors.New("question with empty id")
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true

		switch q.Type {
		case QuestionSingleChoice, QuestionOptionalText:
			if len(q.Options) == 0 {
				return nil, fmt.Errorf("question %q has no options", q.ID)
			}
		case QuestionTextInput:
		default:
			return nil, fmt.Errorf("question %q has unknown type %q", q.ID, q.Type)
		}
	}

	return file.Questions, nil
}

func sameIDSequence(reference, other []Question) error {
	if len(reference) != len(other) {
		return fmt.Errorf("question count mismatch: %d vs %d", len(reference), len(other))
	}
	for i := range reference {
		if reference[i].ID != other[i].ID {
			return fmt.Errorf("id mismatch at index %d: %q vs %q", i, reference[i].ID, other[i].ID)
		}
	}
	return nil
}

func (c *Catalog) Questions(lang string) []Question {
	return c.byLanguage[lang]
}

func (c *Catalog) Count(lang string) int {
	return len(c.byLanguage[lang])
}

func (c *Catalog) ByIndex(lang string, i int) (Question, bool) {
	questions := c.byLanguage[lang]
	if i < 0 || i >= len(questions) {
		return Question{}, false
	}
	return questions[i], true
}

func (c *Catalog) ByID(lang, id string) (Question, bool) {
	i, ok := c.indexByID[lang][id]
	if !ok {
		return Question{}, false
	}
	return c.byLanguage[lang][i], true
}

func (c *Catalog) IndexOf(lang, id string) (int, bool) {
	i, ok := c.indexByID[lang][id]
	return i, ok
}
