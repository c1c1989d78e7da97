package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/minios-linux/localetrans/translate"
)

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// Environment variable names, optionally provided through a .env file.
const (
	EnvAPI    = "API"
	EnvAPIKey = "API_KEY"
	EnvAPIURL = "API_URL"
)

// Env holds provider settings read from the environment.
type Env struct {
	API    string
	APIKey string
	URL    string
}

// LoadEnv loads rootDir/.env (if present) into the process environment
// without overriding variables that are already set, then reads the
// provider variables.
func LoadEnv(rootDir string) (Env, error) {
	path := filepath.Join(rootDir, ".env")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Env{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return Env{
		API:    os.Getenv(EnvAPI),
		APIKey: os.Getenv(EnvAPIKey),
		URL:    os.Getenv(EnvAPIURL),
	}, nil
}

// ---------------------------------------------------------------------------
// Provider settings resolution
// ---------------------------------------------------------------------------

// Credentials supplies stored per-provider secrets (see package settings).
type Credentials interface {
	APIKey(providerID string) string
	BaseURL(providerID string) string
}

// Flags are the provider-related command line values; empty means unset.
type Flags struct {
	API    string
	APIKey string
	URL    string
}

// Source names where a resolved value came from, for display.
type Source string

const (
	SourceNone    Source = ""
	SourceFlag    Source = "flag"
	SourceEnv     Source = "environment"
	SourceProject Source = "project file"
	SourceStore   Source = "credential store"
	SourceDefault Source = "default"
)

// Settings is the resolved provider configuration.
type Settings struct {
	Provider string `validate:"required"`
	APIKey   string
	URL      string `validate:"omitempty,url"`

	ProviderSource Source `validate:"-"`
	KeySource      Source `validate:"-"`
	URLSource      Source `validate:"-"`
}

// Resolve merges provider settings with precedence
// flag > environment > project file > credential store > default.
// The project file and credentials may be nil. A project url is tied to
// the project api and is ignored when another provider was selected.
func Resolve(flags Flags, env Env, project *ProjectFile, creds Credentials) (Settings, error) {
	var s Settings

	switch {
	case flags.API != "":
		s.Provider, s.ProviderSource = flags.API, SourceFlag
	case env.API != "":
		s.Provider, s.ProviderSource = env.API, SourceEnv
	case project != nil && project.API != "":
		s.Provider, s.ProviderSource = project.API, SourceProject
	default:
		s.Provider, s.ProviderSource = translate.DefaultProvider, SourceDefault
	}

	if _, err := translate.Lookup(s.Provider); err != nil {
		return Settings{}, err
	}

	switch {
	case flags.APIKey != "":
		s.APIKey, s.KeySource = flags.APIKey, SourceFlag
	case env.APIKey != "":
		s.APIKey, s.KeySource = env.APIKey, SourceEnv
	case creds != nil && creds.APIKey(s.Provider) != "":
		s.APIKey, s.KeySource = creds.APIKey(s.Provider), SourceStore
	}

	switch {
	case flags.URL != "":
		s.URL, s.URLSource = flags.URL, SourceFlag
	case env.URL != "":
		s.URL, s.URLSource = env.URL, SourceEnv
	case project != nil && project.URL != "" && (project.API == "" || project.API == s.Provider):
		s.URL, s.URLSource = project.URL, SourceProject
	case creds != nil && creds.BaseURL(s.Provider) != "":
		s.URL, s.URLSource = creds.BaseURL(s.Provider), SourceStore
	}

	if err := ValidateStruct(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
