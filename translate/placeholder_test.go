package translate

import (
	"fmt"
	"strings"
	"testing"
)

func TestProtect(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		vars []string
	}{
		{
			name: "no templates",
			in:   "Plain text",
			want: "Plain text",
		},
		{
			name: "single template",
			in:   "Hello {{ name }}",
			want: "Hello $1",
			vars: []string{"{{ name }}"},
		},
		{
			name: "whitespace tolerant",
			in:   "{{name}} and {{   count   }}",
			want: "$1 and $2",
			vars: []string{"{{name}}", "{{   count   }}"},
		},
		{
			name: "repeated template gets fresh tokens",
			in:   "{{ x }} + {{ x }}",
			want: "$1 + $2",
			vars: []string{"{{ x }}", "{{ x }}"},
		},
		{
			name: "non-identifier content is left alone",
			in:   "{{ user.name }} {single} {{ ok_1 }}",
			want: "{{ user.name }} {single} $1",
			vars: []string{"{{ ok_1 }}"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, vars := protect(tc.in)
			if got != tc.want {
				t.Fatalf("protect(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if len(vars) != len(tc.vars) {
				t.Fatalf("got %d placeholders, want %d", len(vars), len(tc.vars))
			}
			for i := range vars {
				if vars[i] != tc.vars[i] {
					t.Errorf("vars[%d] = %q, want %q", i, vars[i], tc.vars[i])
				}
			}
		})
	}
}

func TestProtectRestoreRoundTrip(t *testing.T) {
	in := "Hello {{ name }}, you have {{ count }} items"
	work, vars := protect(in)
	if got := vars.restore(work); got != in {
		t.Fatalf("round trip = %q, want %q", got, in)
	}
}

func TestRestore_ReorderedTokens(t *testing.T) {
	_, vars := protect("{{ a }} before {{ b }}")
	got := vars.restore("$2 después de $1")
	if got != "{{ b }} después de {{ a }}" {
		t.Fatalf("restore = %q", got)
	}
}

func TestRestore_DroppedTokenIsLeftAlone(t *testing.T) {
	_, vars := protect("{{ a }} and {{ b }}")
	got := vars.restore("only $2 survived")
	if got != "only {{ b }} survived" {
		t.Fatalf("restore = %q", got)
	}
}

func TestRestore_DoubleDigitTokens(t *testing.T) {
	var parts []string
	for i := 1; i <= 11; i++ {
		parts = append(parts, fmt.Sprintf("{{ v%d }}", i))
	}
	in := strings.Join(parts, " ")

	work, vars := protect(in)
	if !strings.Contains(work, "$10") || !strings.Contains(work, "$11") {
		t.Fatalf("expected $10 and $11 tokens, got %q", work)
	}
	if got := vars.restore(work); got != in {
		t.Fatalf("restore = %q, want %q", got, in)
	}
}

func TestIsHTML(t *testing.T) {
	if !isHTML("<b>Bold</b>") {
		t.Error("expected markup to be html")
	}
	if isHTML("a < b") {
		t.Error("single angle bracket is not html")
	}
	if isHTML("plain") {
		t.Error("plain text is not html")
	}
}
