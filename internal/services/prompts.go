package services

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

// fallbackSystemMessage keeps report generation alive when the prompts
// file is missing or broken.
const fallbackSystemMessage = "Ти - професійний медичний асистент. Твоє завдання - складати медичні звіти."

const patientDataPlaceholder = "[PATIENT_DATA_PLACEHOLDER]"

// PromptSet holds the report-generation templates extracted from the
// prompts markdown file.
type PromptSet struct {
	System      string
	Main        string
	Alternative string
}

// LoadPrompts extracts the fenced block under each known section of the
// prompts file. Absence of the file or of a section degrades to the
// hardcoded system message rather than failing startup.
func LoadPrompts(path string) *PromptSet {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[Prompts] cannot read %s: %v, using fallback system message", path, err)
		return &PromptSet{System: fallbackSystemMessage}
	}

	set := &PromptSet{
		System:      extractSection(string(content), "## System Message"),
		Main:        extractSection(string(content), "## Main Report Generation Prompt"),
		Alternative: extractSection(string(content), "## Alternative Prompt"),
	}

	if set.System == "" {
		log.Printf("[Prompts] system message section missing in %s, using fallback", path)
		set.System = fallbackSystemMessage
	}
	if set.Main == "" {
		log.Printf("[Prompts] main template section missing in %s", path)
	}
	if set.Alternative == "" {
		set.Alternative = set.Main
	}
	return set
}

func extractSection(content, marker string) string {
	pattern := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(marker) + `.*?` + "```" + `(.*?)` + "```")
	if m := pattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// BuildUserPrompt substitutes the collected intake data into the chosen
// template. ErrNoTemplate signals a configuration-level failure.
func (p *PromptSet) BuildUserPrompt(patientData string, useAlternative bool) (string, error) {
	template := p.Main
	if useAlternative {
		template = p.Alternative
	}
	if template == "" {
		return "", fmt.Errorf("no prompt template configured")
	}
	return strings.ReplaceAll(template, patientDataPlaceholder, patientData), nil
}
