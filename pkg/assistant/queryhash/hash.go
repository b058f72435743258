package queryhash

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"

	"shop-assistant-be/internal/constant"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalize folds a message into its canonical dedup form: lower-case,
// collapsed whitespace, search-verb synonyms folded to "buscar", stop
// words removed. "quero nescau" and "buscar   nescau" normalize equal.
func Normalize(message string) string {
	text := strings.ToLower(strings.TrimSpace(message))
	text = whitespacePattern.ReplaceAllString(text, " ")

	verbs := make(map[string]bool, len(constant.SearchVerbs))
	for _, v := range constant.SearchVerbs {
		verbs[v] = true
	}
	stops := make(map[string]bool, len(constant.StopWords))
	for _, w := range constant.StopWords {
		stops[w] = true
	}

	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if verbs[f] {
			f = "buscar"
		}
		if stops[f] {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// Hash returns the hex MD5 of the normalized message, used as the
// context dedup key.
func Hash(message string) string {
	sum := md5.Sum([]byte(Normalize(message)))
	return hex.EncodeToString(sum[:])
}
