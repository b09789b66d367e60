package stepwise

import (
	"fmt"
	"regexp"
	"strings"
)

// A Matcher locates an expected prompt in a span of unconsumed terminal
// output. loc is the half-open byte range [start, end) of the earliest
// occurrence, or nil when the span contains no match. The string return is a
// human-readable description for error messages.
type Matcher func(out string) (loc []int, description string)

// Text matches the earliest occurrence of the given substring.
func Text(s string) Matcher {
	return func(out string) ([]int, string) {
		desc := fmt.Sprintf("output to contain %q", s)
		i := strings.Index(out, s)
		if i < 0 {
			return nil, desc
		}
		return []int{i, i + len(s)}, desc
	}
}

// Pattern matches the earliest occurrence of the regular expression.
// The pattern is compiled once; an invalid pattern causes a panic.
func Pattern(pattern string) Matcher {
	re := regexp.MustCompile(pattern)
	return func(out string) ([]int, string) {
		return re.FindStringIndex(out), fmt.Sprintf("output to match %q", pattern)
	}
}

// Any matches when at least one provided matcher matches, taking the
// earliest occurrence across all of them.
func Any(matchers ...Matcher) Matcher {
	return func(out string) ([]int, string) {
		var best []int
		descs := make([]string, 0, len(matchers))
		for _, m := range matchers {
			loc, desc := m(out)
			descs = append(descs, desc)
			if loc != nil && (best == nil || loc[0] < best[0]) {
				best = loc
			}
		}
		return best, "any of: " + strings.Join(descs, ", ")
	}
}
