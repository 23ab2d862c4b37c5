package casegraph

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize canonicalizes a raw extracted label into the key used for
// deduplication: trim, collapse internal whitespace, lowercase, strip
// trailing punctuation, fold accented characters to base Latin letters.
//
// Two labels normalize equal iff they are the same entity for graph
// purposes. Matching is exact-after-normalization; no fuzzy matching is
// performed so merges stay deterministic and auditable.
func Normalize(t NodeType, rawLabel string) (string, error) {
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown node type %q", ErrValidation, string(t))
	}
	if strings.TrimSpace(rawLabel) == "" {
		return "", fmt.Errorf("%w: empty label for type %q", ErrValidation, string(t))
	}

	key := rawLabel
	if folded, _, err := transform.String(foldTransformer, key); err == nil {
		key = folded
	}
	key = strings.ToLower(key)
	key = strings.Join(strings.Fields(key), " ")
	key = strings.TrimRightFunc(key, func(r rune) bool {
		return unicode.IsPunct(r)
	})
	key = strings.TrimSpace(key)

	if key == "" {
		return "", fmt.Errorf("%w: label %q normalizes to nothing", ErrValidation, rawLabel)
	}
	return key, nil
}
