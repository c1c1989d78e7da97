package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultLocalesDir is searched for the source locale when no input is given.
const DefaultLocalesDir = "locales"

// defaultLocaleSuffix marks the source locale file, e.g. en.default.json.
const defaultLocaleSuffix = ".default.json"

// ErrNoTargetLanguage is returned when neither an output file, a target
// language, nor project languages are available.
var ErrNoTargetLanguage = errors.New("no output file provided, cannot guess language to translate to")

// Job is one source→target translation run.
type Job struct {
	Input  string
	Output string // empty = stdout
	From   string
	To     string
}

// JobFlags are the file-related command line values; empty means unset.
type JobFlags struct {
	Input  string
	Output string
	From   string
	To     string
}

// PlanJobs decides which files to translate.
//
//   - The input is the --input flag, the project input, or the single
//     locales/*.default.json file under rootDir.
//   - The source language is --from, the project source_lang, or the first
//     dot-separated part of the input file name.
//   - With --output or --to a single job is returned; the target language
//     defaults to the first part of the output file name.
//   - Otherwise one job per project language, or per existing locale file
//     next to the input, is returned. Without a project file the detected
//     files are translated in place.
func PlanJobs(rootDir string, f JobFlags, project *ProjectFile) ([]Job, error) {
	input := f.Input
	if input == "" {
		input = project.InputPath()
	}
	if input == "" {
		found, err := FindDefaultLocale(filepath.Join(rootDir, DefaultLocalesDir))
		if err != nil {
			return nil, err
		}
		input = found
	}

	from := f.From
	if from == "" && project != nil {
		from = project.SourceLang
	}
	if from == "" {
		from = LangFromPath(input)
	}

	if f.Output != "" || f.To != "" {
		to := f.To
		if to == "" {
			to = LangFromPath(f.Output)
		}
		return []Job{{Input: input, Output: f.Output, From: from, To: to}}, nil
	}

	var langs []string
	if project != nil && len(project.Languages) > 0 {
		langs = project.Languages
	} else {
		langs = DetectLanguages(filepath.Dir(input))
	}
	langs = filterOutLang(langs, from)
	if len(langs) == 0 {
		return nil, ErrNoTargetLanguage
	}

	jobs := make([]Job, 0, len(langs))
	for _, lang := range langs {
		output := filepath.Join(filepath.Dir(input), lang+".json")
		if project != nil {
			output = project.OutputPath(lang)
		}
		jobs = append(jobs, Job{
			Input:  input,
			Output: output,
			From:   from,
			To:     lang,
		})
	}
	return jobs, nil
}

// FindDefaultLocale returns the first *.default.json file in dir.
func FindDefaultLocale(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no input file provided and no %s folder found", dir)
		}
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), defaultLocaleSuffix) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("no default locale file (*%s) found in %s", defaultLocaleSuffix, dir)
}

// DetectLanguages finds language codes from existing locale files in dir,
// skipping the default locale and Shopify schema files (*.schema.json).
func DetectLanguages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var langs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		if strings.HasSuffix(name, defaultLocaleSuffix) || strings.HasSuffix(name, ".schema.json") {
			continue
		}
		langs = append(langs, LangFromPath(name))
	}
	sort.Strings(langs)
	return langs
}

// LangFromPath returns the language encoded in a locale file name:
// the first dot-separated part of the base name ("locales/en.default.json" → "en").
func LangFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

func filterOutLang(langs []string, exclude string) []string {
	var out []string
	seen := make(map[string]bool, len(langs))
	for _, l := range langs {
		l = strings.TrimSpace(l)
		if l == "" || l == exclude || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
