package sentiment

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"econ-mood-monitor/internal/entity"
	"econ-mood-monitor/pkg/logger"
)

const (
	// PolarityThreshold is the per-headline score cutoff separating signal
	// headlines from neutral ones. It is shared with the aggregate label
	// thresholds below so both levels stay consistent.
	PolarityThreshold = 0.1

	// BullLabelThreshold and BearLabelThreshold classify the aggregate
	// optimism ratio (0-100) into a region label.
	BullLabelThreshold = 55.0
	BearLabelThreshold = 45.0
)

// Classifier scores headline text against a preloaded financial sentiment
// lexicon. The lexicon is read-only after construction, so a single instance
// is safe for concurrent use by all region workers. Identical input always
// yields identical output.
type Classifier struct {
	words   map[string]float64
	phrases []weightedPhrase
	log     *logger.Logger
}

// NewClassifier constructs a classifier with the built-in lexicon. Loading
// happens once here, never on the per-headline path.
func NewClassifier(log *logger.Logger) *Classifier {
	return &Classifier{
		words:   lexiconWords,
		phrases: lexiconPhrases,
		log:     log,
	}
}

// Classify maps headline text to a sentiment label and a score in [-1, 1].
// Malformed input degrades to (neutral, 0) and is logged; it never aborts a
// batch.
func (c *Classifier) Classify(text string) (entity.SentimentLabel, float64) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return entity.SentimentNeutral, 0
	}
	if !utf8.ValidString(cleaned) {
		c.log.Warn("classifier received malformed input, degrading to neutral",
			logger.IntField("length", len(cleaned)))
		return entity.SentimentNeutral, 0
	}

	lower := strings.ToLower(cleaned)

	var pos, neg float64
	for _, p := range c.phrases {
		if strings.Contains(lower, p.text) {
			if p.weight > 0 {
				pos += p.weight
			} else {
				neg -= p.weight
			}
		}
	}
	for _, tok := range tokenize(lower) {
		w, ok := c.words[tok]
		if !ok {
			continue
		}
		if w > 0 {
			pos += w
		} else {
			neg -= w
		}
	}

	total := pos + neg
	if total == 0 {
		return entity.SentimentNeutral, 0
	}

	// Direction from the hit balance, magnitude damped by hit coverage so a
	// single weak hit does not read as full confidence.
	raw := (pos - neg) / total
	confidence := math.Min(1, total/3)
	score := round3(raw * confidence)

	switch {
	case score > PolarityThreshold:
		return entity.SentimentPositive, score
	case score < -PolarityThreshold:
		return entity.SentimentNegative, score
	default:
		return entity.SentimentNeutral, score
	}
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
