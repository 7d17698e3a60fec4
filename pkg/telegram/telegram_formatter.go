package telegram

import (
	"fmt"
	"strings"
)

// FormatRegionAlert formats a Markdown alert for a notable sentiment move in
// one region: a label flip or a large score change between two cycles.
func FormatRegionAlert(regionName string, prevScore, newScore float64, prevLabel, newLabel string) string {
	var b strings.Builder

	delta := newScore - prevScore
	var directionIcon string
	switch {
	case delta > 0:
		directionIcon = "📈"
	case delta < 0:
		directionIcon = "📉"
	default:
		directionIcon = "➡️"
	}

	b.WriteString(fmt.Sprintf("%s *Economic Mood Alert: %s*\n\n", directionIcon, regionName))
	b.WriteString(fmt.Sprintf("Optimism index moved from *%.1f%%* to *%.1f%%* (%+.1f points).\n", prevScore, newScore, delta))

	if prevLabel != newLabel {
		b.WriteString(fmt.Sprintf("%s Sentiment flipped from *%s* to *%s*.\n", labelIcon(newLabel), prevLabel, newLabel))
	} else {
		b.WriteString(fmt.Sprintf("%s Sentiment remains *%s*.\n", labelIcon(newLabel), newLabel))
	}

	return b.String()
}

func labelIcon(label string) string {
	switch strings.ToLower(label) {
	case "positive":
		return "😊"
	case "negative":
		return "😟"
	default:
		return "😐"
	}
}
