package seating

import (
	"fmt"
	"strings"
)

// MaxNumeral is the largest row number Numeral can spell.
const MaxNumeral = 99

var numeralDigits = [...]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

const numeralTen = "十"

// Numeral spells n (1..99) as a Chinese numeral: 十 for ten, 十一..十九 for
// the teens and 二十, 二十一 ... 九十九 above.
func Numeral(n int) (string, error) {
	if n < 1 || n > MaxNumeral {
		return "", fmt.Errorf("%w: %d", ErrInvalidNumeral, n)
	}
	if n < 10 {
		return numeralDigits[n], nil
	}
	tens, ones := n/10, n%10
	var b strings.Builder
	if tens > 1 {
		b.WriteString(numeralDigits[tens])
	}
	b.WriteString(numeralTen)
	b.WriteString(numeralDigits[ones]) // empty for ones == 0
	return b.String(), nil
}
