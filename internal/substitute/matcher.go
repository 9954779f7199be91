package substitute

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"smalirename/internal/mapping"
)

// Matcher replaces literal keys with their mapped values.
type Matcher struct {
	re   *regexp.Regexp
	snap mapping.Snapshot
	keys int
}

// Compile builds a matcher from snap. It returns nil when snap is empty, in
// which case there is nothing to substitute.
func Compile(snap mapping.Snapshot) (*Matcher, error) {
	entries := snap.Entries()
	if len(entries) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Old)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	re, err := regexp.Compile(strings.Join(quoted, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile identifier matcher: %w", err)
	}
	re.Longest()

	return &Matcher{re: re, snap: snap, keys: len(keys)}, nil
}

// Keys reports how many identifiers the matcher recognizes.
func (m *Matcher) Keys() int {
	if m == nil {
		return 0
	}
	return m.keys
}

// Replace returns text with every non-overlapping, leftmost-longest match
// replaced, along with the number of replacements made.
func (m *Matcher) Replace(text string) (string, int) {
	if m == nil || text == "" {
		return text, 0
	}
	count := 0
	out := m.re.ReplaceAllStringFunc(text, func(match string) string {
		replacement, ok := m.snap.Lookup(match)
		if !ok {
			return match
		}
		count++
		return replacement
	})
	return out, count
}

// Count returns the number of replacements Replace would make.
func (m *Matcher) Count(text string) int {
	if m == nil || text == "" {
		return 0
	}
	return len(m.re.FindAllStringIndex(text, -1))
}
