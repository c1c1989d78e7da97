package i18n

import (
	"testing"

	"github.com/leonelquinteros/gotext"
)

func clearLocaleEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
}

func TestDetectLanguagePriorityAndNormalization(t *testing.T) {
	t.Run("LANGUAGE has highest priority", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "ru_RU.UTF-8:en_US")
		t.Setenv("LC_ALL", "de_DE.UTF-8")

		if got := detectLanguage(); got != "ru_RU" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "ru_RU")
		}
	})

	t.Run("C and POSIX are skipped", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "C")
		t.Setenv("LC_ALL", "POSIX")
		t.Setenv("LC_MESSAGES", "fr_FR.UTF-8")

		if got := detectLanguage(); got != "fr_FR" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "fr_FR")
		}
	})

	t.Run("falls back to en", func(t *testing.T) {
		clearLocaleEnv(t)
		if got := detectLanguage(); got != "en" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "en")
		}
	})
}

func TestTAndNFallbackWhenUninitialized(t *testing.T) {
	old, oldMsgs := po, msgs
	po, msgs = nil, nil
	t.Cleanup(func() { po, msgs = old, oldMsgs })

	if got := T("Hello"); got != "Hello" {
		t.Fatalf("T fallback = %q, want %q", got, "Hello")
	}

	if got := N("file", "files", 1); got != "file" {
		t.Fatalf("N singular fallback = %q, want %q", got, "file")
	}

	if got := N("file", "files", 2); got != "files" {
		t.Fatalf("N plural fallback = %q, want %q", got, "files")
	}
}

func TestEmbeddedCatalogs(t *testing.T) {
	old, oldMsgs := po, msgs
	t.Cleanup(func() { po, msgs = old, oldMsgs })

	Init("es_ES")
	if got := T("Manage stored API keys"); got != "Gestionar las claves de API guardadas" {
		t.Fatalf("T(es) = %q", got)
	}
	if got := N("Translated %d string", "Translated %d strings", 3); got != "%d cadenas traducidas" {
		t.Fatalf("N(es, 3) = %q", got)
	}

	Init("ru")
	if got := N("Translated %d string", "Translated %d strings", 5); got != "Переведено %d строк" {
		t.Fatalf("N(ru, 5) = %q", got)
	}

	Init("xx")
	if got := T("Manage stored API keys"); got != "Manage stored API keys" {
		t.Fatalf("T(unknown) = %q, want passthrough", got)
	}
}

func TestTKeepsPercentSigns(t *testing.T) {
	oldMsgs := msgs
	t.Cleanup(func() { msgs = oldMsgs })

	msgs = map[string]*gotext.Translation{
		"Done": {ID: "Done", Trs: map[int]string{0: "100% listo"}},
	}
	if got := T("Done"); got != "100% listo" {
		t.Fatalf("T = %q, want verbatim translation", got)
	}
}

func TestCatalogsCoverSameMessages(t *testing.T) {
	old, oldMsgs := po, msgs
	t.Cleanup(func() { po, msgs = old, oldMsgs })

	Init("es")
	es := msgs
	Init("ru")
	ru := msgs

	if len(es) == 0 || len(es) != len(ru) {
		t.Fatalf("catalog sizes differ: es=%d ru=%d", len(es), len(ru))
	}
	for id := range es {
		if id == "" {
			continue
		}
		tr, ok := ru[id]
		if !ok || tr.Get() == id {
			t.Errorf("ru catalog misses %q", id)
		}
	}
}
