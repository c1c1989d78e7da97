// Package langmeta provides language display metadata (native and English
// names, emoji flags) for the CLI, derived from CLDR data in
// golang.org/x/text.
package langmeta

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Meta describes language display metadata.
type Meta struct {
	Tag     string // canonical BCP 47 tag, or the input when unparsable
	Name    string // native name, e.g. "Deutsch"
	English string // English name, e.g. "German"
	Flag    string
}

var englishNamer = display.English.Tags()

func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return normalized
	}
	return tag.String()
}

// Canonical returns the canonical form of a language code
// ("pt_br" → "pt-BR"), or the trimmed input if it does not parse.
func Canonical(lang string) string {
	return canonicalize(lang)
}

// Valid reports whether lang parses as a language tag.
func Valid(lang string) bool {
	lang = strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if lang == "" {
		return false
	}
	_, err := language.Parse(lang)
	return err == nil
}

// Resolve returns best-effort language metadata for language codes,
// supporting variants like pt_BR and pt-BR. Unknown codes pass through
// as their own name.
func Resolve(lang string) Meta {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	tag, err := language.Parse(normalized)
	if err != nil || normalized == "" {
		return Meta{Tag: lang, Name: lang, English: lang}
	}

	m := Meta{
		Tag:     tag.String(),
		Name:    display.Self.Name(tag),
		English: englishNamer.Name(tag),
		Flag:    flag(tag),
	}
	if m.Name == "" {
		m.Name = m.Tag
	}
	if m.English == "" {
		m.English = m.Tag
	}
	return m
}

// Label renders "code (Name)" for log lines, with the code in canonical
// form ("pt_br" → "pt-BR (português)").
func Label(lang string) string {
	code := Canonical(lang)
	m := Resolve(code)
	if m.Name == code || m.Name == m.Tag {
		return code
	}
	return code + " (" + m.Name + ")"
}

// flag builds a regional-indicator emoji from the tag's (possibly
// inferred) two-letter region.
func flag(tag language.Tag) string {
	region, conf := tag.Region()
	if conf == language.No || !region.IsCountry() {
		return ""
	}
	code := region.String()
	if len(code) != 2 {
		return ""
	}
	var b strings.Builder
	for _, c := range code {
		b.WriteRune(0x1F1E6 + (c - 'A'))
	}
	return b.String()
}
