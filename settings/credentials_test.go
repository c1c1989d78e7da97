package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilePathUsesXDGDataHome(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	wantPath := filepath.Join(tmp, "localetrans", "auth.json")
	if got := FilePath(); got != wantPath {
		t.Fatalf("FilePath() = %q, want %q", got, wantPath)
	}
}

func TestSaveLoadRemoveLifecycle(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	store := Store{
		"google": {Key: "apikey123456"},
		"custom": {BaseURL: "https://translate.example.com/translate"},
	}

	if err := Save(store); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	path := filepath.Join(tmp, "localetrans", "auth.json")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat auth.json: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("auth.json mode = %o, want 600", info.Mode().Perm())
	}

	loaded := Load()
	if got := loaded.APIKey("google"); got != "apikey123456" {
		t.Fatalf("Load() google key = %q", got)
	}
	if got := loaded.BaseURL("custom"); got != "https://translate.example.com/translate" {
		t.Fatalf("Load() custom base URL = %q", got)
	}
	if got := loaded.Providers(); len(got) != 2 || got[0] != "custom" || got[1] != "google" {
		t.Fatalf("Providers() = %v", got)
	}

	if err := Remove("google"); err != nil {
		t.Fatalf("Remove(google) error: %v", err)
	}
	if got := Load().APIKey("google"); got != "" {
		t.Fatalf("APIKey after remove = %q, want empty", got)
	}
	if Load()["custom"] == nil {
		t.Fatalf("custom entry should remain after removing google")
	}

	if err := Remove("missing-provider"); err != nil {
		t.Fatalf("Remove(missing) should be no-op, got: %v", err)
	}

	if err := RemoveAll(); err != nil {
		t.Fatalf("RemoveAll() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("auth.json should be removed, stat err=%v", err)
	}
	if got := Load(); len(got) != 0 {
		t.Fatalf("Load() after RemoveAll should be empty, got=%#v", got)
	}
}

func TestSetAPIKeyAndBaseURLKeepEachOther(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	if err := SetBaseURL("custom", "https://a.example"); err != nil {
		t.Fatalf("SetBaseURL() error: %v", err)
	}
	if err := SetAPIKey("custom", "secret-key"); err != nil {
		t.Fatalf("SetAPIKey() error: %v", err)
	}

	got := Load()["custom"]
	if got == nil || got.Key != "secret-key" || got.BaseURL != "https://a.example" {
		t.Fatalf("custom entry = %#v", got)
	}

	if err := SetBaseURL("custom", "https://b.example"); err != nil {
		t.Fatalf("SetBaseURL() error: %v", err)
	}
	if got := Load()["custom"]; got.Key != "secret-key" {
		t.Fatalf("key lost after SetBaseURL: %#v", got)
	}
}

func TestLoadInvalidFileReturnsEmptyStore(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	path := filepath.Join(tmp, "localetrans", "auth.json")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := Load(); got == nil || len(got) != 0 {
		t.Fatalf("Load() = %#v, want empty store", got)
	}
}

func TestMaskKey(t *testing.T) {
	if got := MaskKey("short"); got != "****" {
		t.Fatalf("MaskKey(short) = %q, want ****", got)
	}
	if got := MaskKey("12345678"); got != "****" {
		t.Fatalf("MaskKey(8 chars) = %q, want ****", got)
	}
	if got := MaskKey("123456789"); got != "1234...6789" {
		t.Fatalf("MaskKey(9 chars) = %q, want 1234...6789", got)
	}
}
