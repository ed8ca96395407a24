package meta

import (
	"os"
	"strings"
	"unicode"
)

const (
	envPrefix    = "${env."
	envDefaulter = ":-"
)

// expandEnv substitutes ${env.KEY} and ${env.KEY:-fallback} references in a
// configuration document. An unset or empty KEY yields the fallback, or "".
// A reference whose key is not made of letters, digits and '_' is kept as
// written; an unterminated one ends expansion.
func expandEnv(document string) string {
	var out strings.Builder
	for {
		start := strings.Index(document, envPrefix)
		if start < 0 {
			out.WriteString(document)
			return out.String()
		}
		out.WriteString(document[:start])
		body := document[start+len(envPrefix):]
		end := strings.IndexByte(body, '}')
		if end < 0 {
			out.WriteString(document[start:])
			return out.String()
		}
		key, fallback, _ := strings.Cut(body[:end], envDefaulter)
		if strings.IndexFunc(key, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
		}) >= 0 {
			out.WriteString(envPrefix)
			document = body
			continue
		}
		value := os.Getenv(key)
		if value == "" {
			value = fallback
		}
		out.WriteString(value)
		document = body[end+1:]
	}
}
