package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLangFromPath(t *testing.T) {
	cases := map[string]string{
		"locales/en.default.json": "en",
		"es.json":                 "es",
		"/tmp/out/pt-BR.json":     "pt-BR",
		"README":                  "README",
	}
	for in, want := range cases {
		assert.Equal(t, want, LangFromPath(in), in)
	}
}

func TestFindDefaultLocale(t *testing.T) {
	t.Run("missing folder", func(t *testing.T) {
		_, err := FindDefaultLocale(filepath.Join(t.TempDir(), "locales"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "folder")
	})

	t.Run("no default file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "es.json"), "{}")
		_, err := FindDefaultLocale(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ".default.json")
	})

	t.Run("found", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "es.json"), "{}")
		writeFile(t, filepath.Join(dir, "en.default.json"), "{}")
		got, err := FindDefaultLocale(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "en.default.json"), got)
	})
}

func TestDetectLanguages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"en.default.json", "en.default.schema.json", "fr.json", "de.json", "notes.txt"} {
		writeFile(t, filepath.Join(dir, name), "{}")
	}
	assert.Equal(t, []string{"de", "fr"}, DetectLanguages(dir))
	assert.Nil(t, DetectLanguages(filepath.Join(dir, "missing")))
}

func TestPlanJobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "locales", "en.default.json"), "{}")
	writeFile(t, filepath.Join(root, "locales", "it.json"), "{}")
	defaultInput := filepath.Join(root, "locales", "en.default.json")

	t.Run("explicit flags", func(t *testing.T) {
		jobs, err := PlanJobs(root, JobFlags{Input: "in/en.json", Output: "out/es.json", From: "en", To: "es"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []Job{{Input: "in/en.json", Output: "out/es.json", From: "en", To: "es"}}, jobs)
	})

	t.Run("languages guessed from file names", func(t *testing.T) {
		jobs, err := PlanJobs(root, JobFlags{Output: "locales/de.json"}, nil)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, defaultInput, jobs[0].Input)
		assert.Equal(t, "en", jobs[0].From)
		assert.Equal(t, "de", jobs[0].To)
	})

	t.Run("stdout when only target given", func(t *testing.T) {
		jobs, err := PlanJobs(root, JobFlags{To: "ja"}, nil)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Empty(t, jobs[0].Output)
		assert.Equal(t, "ja", jobs[0].To)
	})

	t.Run("no target", func(t *testing.T) {
		bare := t.TempDir()
		writeFile(t, filepath.Join(bare, "locales", "en.default.json"), "{}")
		_, err := PlanJobs(bare, JobFlags{}, nil)
		assert.True(t, errors.Is(err, ErrNoTargetLanguage))
	})

	t.Run("no project translates existing locales in place", func(t *testing.T) {
		jobs, err := PlanJobs(root, JobFlags{}, nil)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, Job{Input: defaultInput, Output: filepath.Join(root, "locales", "it.json"), From: "en", To: "it"}, jobs[0])
	})

	t.Run("project languages", func(t *testing.T) {
		project := &ProjectFile{
			Languages:  []string{"es", "en", " fr ", "es"},
			Output:     "dist/{lang}.json",
			SourceLang: "en",
			root:       root,
		}
		jobs, err := PlanJobs(root, JobFlags{}, project)
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, Job{Input: defaultInput, Output: filepath.Join(root, "dist", "es.json"), From: "en", To: "es"}, jobs[0])
		assert.Equal(t, "fr", jobs[1].To)
	})

	t.Run("project without languages detects existing locales", func(t *testing.T) {
		project := &ProjectFile{root: root}
		jobs, err := PlanJobs(root, JobFlags{}, project)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "it", jobs[0].To)
		assert.Equal(t, filepath.Join(root, "locales", "it.json"), jobs[0].Output)
	})
}
