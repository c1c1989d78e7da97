package translate

import (
	"regexp"
	"strconv"
	"strings"
)

// templatePattern matches {{ name }} style interpolation variables.
var templatePattern = regexp.MustCompile(`\{\{\s*[a-zA-Z0-9_]+\s*\}\}`)

// placeholders maps synthetic tokens ($1, $2, ...) back to the template
// text they replaced. Index i holds the text for token $(i+1).
type placeholders []string

// protect replaces every template in s with a numbered token. Each pass
// takes the first match from the start of the working string, so repeated
// identical templates each get their own token, in order.
func protect(s string) (string, placeholders) {
	var vars placeholders
	for {
		loc := templatePattern.FindStringIndex(s)
		if loc == nil {
			return s, vars
		}
		vars = append(vars, s[loc[0]:loc[1]])
		s = s[:loc[0]] + token(len(vars)) + s[loc[1]:]
	}
}

// restore puts the original templates back. Tokens are restored from the
// highest number down so that $1 never matches the prefix of $10. A token
// the provider dropped or mangled is left as-is.
func (p placeholders) restore(s string) string {
	for i := len(p); i >= 1; i-- {
		s = strings.Replace(s, token(i), p[i-1], 1)
	}
	return s
}

func token(i int) string {
	return "$" + strconv.Itoa(i)
}

// isHTML reports whether s should be submitted in html format.
func isHTML(s string) bool {
	return strings.Contains(s, "<") && strings.Contains(s, ">")
}
