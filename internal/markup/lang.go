package markup

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates bounds the classifier to languages that show up in
// notes often enough to be worth a guess.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

var langAliases = map[string]string{
	"shell": "bash",
	"c++":   "cpp",
}

// detectLanguage guesses the language of an unlabeled code block.
// It returns "" unless go-enry is confident.
func detectLanguage(code string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}
	content := []byte(code)
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalizeLang(lang)
	}
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalizeLang(lang)
	}
	return ""
}

// langFromInfo resolves a fence info word that names a file ("main.go")
// to the language of its extension.
func langFromInfo(word string) string {
	if !strings.Contains(word, ".") {
		return word
	}
	if lang, safe := enry.GetLanguageByExtension(word); safe {
		return normalizeLang(lang)
	}
	return word
}

func normalizeLang(lang string) string {
	l := strings.ToLower(lang)
	if alias, ok := langAliases[l]; ok {
		return alias
	}
	return fenceLang(l)
}
