package cache

import (
	"fmt"
	"sort"
	"strings"
)

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// Key builds a deterministic cache key from ordered segments, for example
// Key("product", 42) -> "product::42". Scalars use their string form; slices
// expand in order; maps expand with sorted keys so the result is stable
// across runs.
func Key(segments ...any) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, segment(seg))
	}
	return strings.Join(parts, KeySeparator)
}

func segment(v any) string {
	switch s := v.(type) {
	case nil:
		return "nil"
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case []string:
		return strings.Join(s, ",")
	case []any:
		parts := make([]string, len(s))
		for i, e := range s {
			parts[i] = segment(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + segment(s[k])
		}
		return strings.Join(pairs, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}
