package match

import (
	"context"
	"strconv"
	"strings"
	"unicode"
)

// KeywordOracle is an offline CompatibilityOracle. It scores the word overlap
// (Jaccard index) of the two texts on the 0-30 scale and never calls out.
type KeywordOracle struct{}

func (KeywordOracle) Compatibility(ctx context.Context, preference, introduction string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	a, b := wordSet(preference), wordSet(introduction)
	if len(a) == 0 || len(b) == 0 {
		return "0", nil
	}

	shared := 0
	for w := range a {
		if _, ok := b[w]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return strconv.Itoa(shared * MaxCompatibilityScore / union), nil
}

func wordSet(text string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if len(w) < 3 {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
