// Package locale holds the wording of a rendered seating chart: the row
// header, how rows are labelled, the placeholder printed for unnamed
// attendees, the stage banner and the placement sentence.
package locale

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/meeting-seatmap/internal/seating"
)

// ErrUnknownLocale is returned by Lookup for unsupported codes.
var ErrUnknownLocale = errors.New("unknown locale")

// Default is the locale used when none is requested.
const Default = "zh"

// Locale bundles the language-specific parts of a chart.
type Locale struct {
	Code        string
	RowHeader   string // first header cell of the grid
	Placeholder string // printed instead of a blank or missing name
	Banner      string // stage marker below the grid

	rowLabel func(n int) (string, error)
	line     func(name, row, seat string) string
}

// RowLabel labels logical row n (1-based).  It satisfies seating.RowLabeler.
func (l Locale) RowLabel(n int) (string, error) { return l.rowLabel(n) }

// Line renders one placement sentence.  The name is used as given; callers
// substitute the placeholder first.
func (l Locale) Line(name, row, seat string) string { return l.line(name, row, seat) }

var locales = map[string]Locale{
	"zh": {
		Code:        "zh",
		RowHeader:   "排号",
		Placeholder: "预留空位",
		// the zero-width space keeps spreadsheet apps from reading the
		// leading '=' as a formula
		Banner: "\u200B=========主席台=========",
		rowLabel: func(n int) (string, error) {
			num, err := seating.Numeral(n)
			if err != nil {
				return "", err
			}
			return "第" + num + "排", nil
		},
		line: func(name, row, seat string) string {
			return fmt.Sprintf("%s 在%s第%s座位。", name, row, seat)
		},
	},
	"en": {
		Code:        "en",
		RowHeader:   "Row",
		Placeholder: "Reserved seat",
		Banner:      "\u200B========= Stage =========",
		// English rows use Arabic digits but keep the 1..99 range of the
		// Chinese numerals, so both locales accept the same charts.
		rowLabel: func(n int) (string, error) {
			if n < 1 || n > seating.MaxNumeral {
				return "", fmt.Errorf("%w: %d", seating.ErrInvalidNumeral, n)
			}
			return "Row " + strconv.Itoa(n), nil
		},
		line: func(name, row, seat string) string {
			return fmt.Sprintf("%s is in %s, seat %s.", name, row, seat)
		},
	},
}

// Lookup returns the locale for code.  An empty code selects Default.
func Lookup(code string) (Locale, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		code = Default
	}
	l, ok := locales[code]
	if !ok {
		return Locale{}, fmt.Errorf("%w: %q", ErrUnknownLocale, code)
	}
	return l, nil
}

// Codes lists the supported locale codes.
func Codes() []string { return []string{"zh", "en"} }
