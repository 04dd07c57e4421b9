package sheet

import (
	"strings"

	"github.com/iliyamo/meeting-seatmap/internal/locale"
	"github.com/iliyamo/meeting-seatmap/internal/seating"
)

// missingNames are cell values that spreadsheet tools use for "no value".
var missingNames = map[string]bool{"nan": true, "#n/a": true, "null": true}

// DisplayName returns the name to print for an attendee: the placeholder for
// blank or missing-value names, the name itself otherwise.
func DisplayName(name string, loc locale.Locale) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || missingNames[strings.ToLower(trimmed)] {
		return loc.Placeholder
	}
	return name
}

// ExplanationLines renders one sentence per placement, in placement order.
func ExplanationLines(placements []seating.Placement, loc locale.Locale) []string {
	lines := make([]string, 0, len(placements))
	for _, p := range placements {
		lines = append(lines, loc.Line(DisplayName(p.Name, loc), p.Row, p.Seat))
	}
	return lines
}

// Explanation is ExplanationLines joined by newlines.
func Explanation(placements []seating.Placement, loc locale.Locale) string {
	return strings.Join(ExplanationLines(placements, loc), "\n")
}
