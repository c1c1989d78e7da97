// Package config resolves everything the translate command needs before it
// touches a provider: the optional .localetrans.yaml project file, .env and
// environment variables, stored credentials, and the list of
// input/output/language jobs to run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// ProjectFileName is the project configuration file looked up in the root.
const ProjectFileName = ".localetrans.yaml"

// LangPlaceholder is substituted with the target language in Output.
const LangPlaceholder = "{lang}"

// DefaultOutputPattern is used when languages are listed without an output.
const DefaultOutputPattern = "locales/" + LangPlaceholder + ".json"

// ProjectFile is the top-level .localetrans.yaml structure.
type ProjectFile struct {
	// API is the provider ID (google, yandex, libretranslate, ...).
	API string `yaml:"api,omitempty"`
	// URL overrides the provider endpoint.
	URL string `yaml:"url,omitempty" validate:"omitempty,url"`
	// Input is the source locale file relative to the project root.
	Input string `yaml:"input,omitempty"`
	// SourceLang overrides the language derived from the input file name.
	SourceLang string `yaml:"source_lang,omitempty"`
	// Languages lists the target languages translated on every run.
	Languages []string `yaml:"languages,omitempty" validate:"dive,required"`
	// Output is the output path pattern relative to the root, containing {lang}.
	Output string `yaml:"output,omitempty"`
	// Concurrency is the number of strings translated at once.
	Concurrency int `yaml:"concurrency,omitempty" validate:"gte=0"`
	// KeepValues copies non-string values into translated files.
	KeepValues bool `yaml:"keep_values,omitempty"`

	root string
}

// LoadProjectFile loads and validates .localetrans.yaml from rootDir.
// Returns nil if no project file exists.
func LoadProjectFile(rootDir string) (*ProjectFile, error) {
	path := filepath.Join(rootDir, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	pf.root = rootDir

	// Defaults
	if len(pf.Languages) > 0 && pf.Output == "" {
		pf.Output = DefaultOutputPattern
	}

	if err := ValidateStruct(pf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if pf.Output != "" && !strings.Contains(pf.Output, LangPlaceholder) {
		return nil, fmt.Errorf("%s: output %q must contain %s", path, pf.Output, LangPlaceholder)
	}

	return &pf, nil
}

// InputPath returns the configured input resolved against the project root,
// or "" if none is configured.
func (pf *ProjectFile) InputPath() string {
	if pf == nil || pf.Input == "" {
		return ""
	}
	return resolvePath(pf.root, pf.Input)
}

// OutputPath returns the output file for lang resolved against the root.
func (pf *ProjectFile) OutputPath(lang string) string {
	pattern := DefaultOutputPattern
	if pf != nil && pf.Output != "" {
		pattern = pf.Output
	}
	root := "."
	if pf != nil {
		root = pf.root
	}
	return resolvePath(root, strings.ReplaceAll(pattern, LangPlaceholder, lang))
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) || root == "" {
		return p
	}
	return filepath.Join(root, p)
}
