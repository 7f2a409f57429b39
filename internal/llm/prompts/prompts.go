package prompts

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"
)

//go:embed templates/*.txt
var FS embed.FS

var systemInstructionsRegex = regexp.MustCompile(`(?i)</?\s*system-instructions\b[^>]*>`)

// Variant selects the difficulty register of the generation prompt.
type Variant string

const (
	// VariantEasy produces recall-level questions.
	VariantEasy Variant = "easy"
	// VariantMedium is the default generation variant.
	VariantMedium Variant = "medium"
	// VariantHard produces application-level questions.
	VariantHard Variant = "hard"
)

var validVariants = map[Variant]bool{
	VariantEasy:   true,
	VariantMedium: true,
	VariantHard:   true,
}

var (
	loadOnce          sync.Once
	loadErr           error
	generateTemplates map[Variant]*template.Template
)

// IsValidVariant checks if a variant name is valid.
func IsValidVariant(v string) bool {
	return validVariants[Variant(v)]
}

// GenerateData holds template data for generation prompts.
type GenerateData struct {
	Topic string
	Count int
}

// Load loads prompt templates from the given filesystem.
// It uses sync.Once to ensure templates are loaded only once.
func Load(fsys fs.FS) error {
	loadOnce.Do(func() {
		generateTemplates = make(map[Variant]*template.Template)

		for _, v := range []Variant{VariantEasy, VariantMedium, VariantHard} {
			file := "templates/generate_" + string(v) + ".txt"

			content, err := fs.ReadFile(fsys, file)
			if err != nil {
				loadErr = errors.New("failed to read prompt file " + file + ": " + err.Error())
				return
			}

			tmpl, err := template.New("generate").Parse(string(content))
			if err != nil {
				loadErr = errors.New("failed to parse prompt template " + file + ": " + err.Error())
				return
			}
			generateTemplates[v] = tmpl
		}
	})
	return loadErr
}

// BuildGeneratePrompt builds a question-generation prompt using the specified variant.
func BuildGeneratePrompt(variant Variant, topic string, count int) (string, error) {
	if generateTemplates == nil {
		return "", errors.New("templates not initialized: call Load first")
	}
	tmpl, ok := generateTemplates[variant]
	if !ok {
		if loadErr != nil {
			return "", fmt.Errorf("templates load failed: %w", loadErr)
		}
		return "", errors.New("invalid prompt variant: " + string(variant))
	}

	if count < 1 {
		count = 1
	}
	if count > 20 {
		count = 20
	}

	data := GenerateData{
		Topic: sanitizeTopic(topic),
		Count: count,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func sanitizeTopic(topic string) string {
	topic = systemInstructionsRegex.ReplaceAllString(topic, "")
	topic = strings.TrimSpace(topic)

	if topic == "" {
		return "[No topic provided]"
	}

	if utf8.RuneCountInString(topic) > 500 {
		runes := []rune(topic)
		topic = string(runes[:500])
	}

	return topic
}
