package sentiment

import (
	"regexp"
	"strings"
)

// defaultNoisePatterns matches headline formats that carry no economic
// signal: opinion pieces, podcasts, listicles and generic lifestyle content.
var defaultNoisePatterns = []string{
	"opinion", "podcast", "podcasts", "guide", "how to", "explained",
	"personal finance", "tips", "editorial", "review", "newsletter",
	"subscribe", "watch live", "live updates", "commentary", "column",
	"q&a", "interview", "quiz", "horoscope", "recipes",
}

// NoiseFilter decides whether a raw headline is worth classifying. It is a
// pure predicate over the title text: no state, no side effects.
type NoiseFilter struct {
	pattern *regexp.Regexp
}

// NewNoiseFilter builds a filter from the default denylist plus any extra
// patterns from configuration.
func NewNoiseFilter(extraPatterns ...string) *NoiseFilter {
	patterns := make([]string, 0, len(defaultNoisePatterns)+len(extraPatterns))
	for _, p := range append(append([]string{}, defaultNoisePatterns...), extraPatterns...) {
		p = strings.TrimSpace(strings.ToLower(p))
		if p == "" {
			continue
		}
		patterns = append(patterns, regexp.QuoteMeta(p))
	}
	return &NoiseFilter{
		pattern: regexp.MustCompile(`(?i)\b(` + strings.Join(patterns, "|") + `)\b`),
	}
}

// Keep reports whether the headline should survive into classification.
// Empty titles are treated as noise.
func (f *NoiseFilter) Keep(title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	return !f.pattern.MatchString(title)
}
