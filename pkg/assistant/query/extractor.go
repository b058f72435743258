package query

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"shop-assistant-be/internal/constant"
)

// Dictionary resolves free-text packaging synonyms to canonical unit
// codes ("caixa" -> "CX"). Implementations are expected to cache.
type Dictionary interface {
	Aliases(ctx context.Context) (map[string]string, error)
}

// Filters is the structured constraint set extracted from a raw query.
// Both fields may be empty; Empty() gates the trigram search tier.
type Filters struct {
	Units         []string
	VolumePattern string
}

// Empty reports whether no constraint at all was extracted.
func (f Filters) Empty() bool {
	return len(f.Units) == 0 && f.VolumePattern == ""
}

// volumePattern matches digits optionally separated by one space from a
// recognized unit suffix. Longer suffixes first so "ml" wins over "l".
var volumePattern = regexp.MustCompile(`(?i)(\d+)\s?(` + volumeSuffixAlternation() + `)\b`)

func volumeSuffixAlternation() string {
	suffixes := append([]string(nil), constant.VolumeSuffixes...)
	sort.SliceStable(suffixes, func(i, j int) bool {
		return len(suffixes[i]) > len(suffixes[j])
	})
	return strings.Join(suffixes, "|")
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Extractor splits a raw query into residual full-text tokens and
// structured filters using the alias dictionary.
type Extractor struct {
	dict Dictionary
}

func NewExtractor(dict Dictionary) *Extractor {
	return &Extractor{dict: dict}
}

// Extract lower-cases the query, strips every alias and volume match
// out of the residual text, and returns what remains plus the filters.
// A dictionary failure is an infrastructure error and propagates.
func (e *Extractor) Extract(ctx context.Context, raw string) (string, Filters, error) {
	aliases, err := e.dict.Aliases(ctx)
	if err != nil {
		return "", Filters{}, err
	}

	text := strings.ToLower(strings.TrimSpace(raw))
	var filters Filters

	seen := make(map[string]bool)
	for alias, unit := range aliases {
		// Whole-word match with optional plural "s": "caixa" and
		// "caixas" match, "caixao" does not.
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(alias)) + `s?\b`)
		if err != nil {
			continue
		}
		if !pattern.MatchString(text) {
			continue
		}
		text = pattern.ReplaceAllString(text, " ")
		if !seen[unit] {
			seen[unit] = true
			filters.Units = append(filters.Units, unit)
		}
	}
	sort.Strings(filters.Units)

	if match := volumePattern.FindStringSubmatch(text); match != nil {
		filters.VolumePattern = "%" + match[1] + strings.ToLower(match[2]) + "%"
		text = volumePattern.ReplaceAllString(text, " ")
	}

	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	return text, filters, nil
}

// Tokens splits residual text into sanitized tsquery terms. Characters
// with meaning inside to_tsquery are dropped.
func Tokens(residual string) []string {
	fields := strings.Fields(residual)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = sanitizeToken(f)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func sanitizeToken(token string) string {
	var b strings.Builder
	for _, r := range token {
		switch r {
		case '&', '|', '!', '(', ')', ':', '*', '\'', '"', '<', '>':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
