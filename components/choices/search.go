package choices

import (
	"sort"
	"strings"

	"github.com/goliatone/go-docforms/pkg/schema"
)

type matchedChoice struct {
	choice   schema.Choice
	isPrefix bool
}

// Search filters the choice list by a case-insensitive substring match on
// value and label. Prefix matches sort first, then alphabetical by value.
func Search(list []schema.Choice, query string, limit int, opts Options) []schema.Choice {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(list) <= limit {
				return append([]schema.Choice{}, list...)
			}
			return append([]schema.Choice{}, list[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedChoice, 0, 32)
	for _, choice := range list {
		value := strings.ToLower(choice.Value)
		label := strings.ToLower(choice.Label)
		if !strings.Contains(value, q) && !strings.Contains(label, q) {
			continue
		}
		matches = append(matches, matchedChoice{
			choice:   choice,
			isPrefix: strings.HasPrefix(value, q) || strings.HasPrefix(label, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].choice.Value < matches[j].choice.Value
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]schema.Choice, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.choice)
	}
	return out
}
