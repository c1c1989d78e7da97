package lockfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHashDeterministic(t *testing.T) {
	h1 := Hash("hello world")
	h2 := Hash("hello world")
	if h1 != h2 {
		t.Errorf("Hash not deterministic: %s != %s", h1, h2)
	}
	h3 := Hash("different")
	if h1 == h3 {
		t.Errorf("Hash collision: %s == %s", h1, h3)
	}
	if len(h1) != 32 {
		t.Errorf("Hash length = %d, want 32", len(h1))
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.json")
	if err := os.WriteFile(path, []byte(`{"a":"b"}`), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if got != Hash(`{"a":"b"}`) {
		t.Errorf("HashFile = %s, want %s", got, Hash(`{"a":"b"}`))
	}

	if _, err := HashFile(filepath.Join(t.TempDir(), "missing.json")); !os.IsNotExist(err) {
		t.Errorf("HashFile(missing) err = %v, want not-exist", err)
	}
}

func TestLoadNonExistent(t *testing.T) {
	lf, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error for non-existent file: %v", err)
	}
	if lf.Version != Version {
		t.Errorf("Version = %d, want %d", lf.Version, Version)
	}
	if len(lf.Checksums) != 0 {
		t.Errorf("Checksums not empty: %v", lf.Checksums)
	}
	if lf.Summary() != "empty" {
		t.Errorf("Summary = %q, want empty", lf.Summary())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	lf, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	lf.Update("locales/es.json", Hash("v1"))
	lf.Update("locales/fr.json", Hash("v1"))

	if err := lf.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := filepath.Join(dir, LockFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Lock file not created at %s", path)
	}
	if lf.Path() != path {
		t.Errorf("Path = %q, want %q", lf.Path(), path)
	}

	lf2, err := Load(dir)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}

	targets := lf2.Targets()
	if len(targets) != 2 || targets[0] != "locales/es.json" || targets[1] != "locales/fr.json" {
		t.Errorf("Targets = %v", targets)
	}
	if lf2.IsChanged("locales/es.json", Hash("v1")) {
		t.Error("reloaded target should be unchanged")
	}
	if want := "2 targets (locales/es.json, locales/fr.json)"; lf2.Summary() != want {
		t.Errorf("Summary = %q, want %q", lf2.Summary(), want)
	}
}

func TestIsChanged(t *testing.T) {
	lf := &LockFile{
		Version:   Version,
		Checksums: make(map[string]string),
	}

	if !lf.IsChanged("-", Hash("a")) {
		t.Error("new target should be changed")
	}

	lf.Update("-", Hash("a"))
	if lf.IsChanged("-", Hash("a")) {
		t.Error("same source should not be changed")
	}
	if !lf.IsChanged("-", Hash("b")) {
		t.Error("modified source should be changed")
	}

	lf.RemoveTarget("-")
	if !lf.IsChanged("-", Hash("a")) {
		t.Error("removed target should be changed")
	}
}

func TestClean(t *testing.T) {
	lf := &LockFile{
		Version:   Version,
		Checksums: map[string]string{"a.json": "1", "b.json": "2", "c.json": "3"},
	}
	lf.Clean([]string{"b.json"})

	if got := lf.Targets(); len(got) != 1 || got[0] != "b.json" {
		t.Errorf("Targets after Clean = %v", got)
	}
}

func TestTargetKey(t *testing.T) {
	if got := TargetKey(""); got != "-" {
		t.Errorf("TargetKey(\"\") = %q, want -", got)
	}
	if got := TargetKey(filepath.Join("locales", "es.json")); got != "locales/es.json" {
		t.Errorf("TargetKey = %q", got)
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LockFileName), []byte("checksums: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFutureVersion(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LockFileName), []byte("version: 99\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected version error")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	lf := &LockFile{Version: Version, Checksums: map[string]string{}}
	if err := lf.Save(); err == nil {
		t.Error("expected error when path is unset")
	}
}
