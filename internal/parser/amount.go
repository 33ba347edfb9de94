package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError reports a line fragment that could not be converted to the
// expected numeric type, naming the field or tax category it belongs to.
type ParseError struct {
	Field     string
	Fragments []string
}

func (e *ParseError) Error() string {
	if len(e.Fragments) == 2 {
		return fmt.Sprintf("couldn't extract value for %q, found %q + %q",
			e.Field, e.Fragments[0], e.Fragments[1])
	}
	return fmt.Sprintf("field %q: cannot parse %q as a number", e.Field, strings.Join(e.Fragments, " "))
}

// StructuralError reports a document whose layout matches neither known
// payslip variant, or a variable-width region too short for its content.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	return "unrecognized payslip structure: " + e.Msg
}

// ParseAmount normalizes a Czech-formatted amount token ("12 345,00") into
// a whole-CZK integer. Spaces (including NBSP) act as thousands separators
// and the decimal comma becomes a decimal point.
//
// Ties round half-up, away from zero (math.Round). Payslip amounts are
// always whole currency units in this format, so the choice only matters
// for malformed input, but it is pinned by a test.
func ParseAmount(token string) (int, error) {
	s := strings.ReplaceAll(token, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as an amount", token)
	}
	return int(math.Round(f)), nil
}

// ParseHours extracts the whole-hour count from an "H:MM"-style token.
// Anything after the first colon is ignored, so "160:00fake" yields 160.
func ParseHours(token string) (int, error) {
	head, _, found := strings.Cut(token, ":")
	if !found {
		return 0, fmt.Errorf("cannot parse %q as hours: no colon", token)
	}
	h, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as hours", token)
	}
	return h, nil
}

// ParseDecimal parses a decimal-comma number ("123,45") without rounding.
// Average hourly earnings keep their fractional part.
func ParseDecimal(token string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(token), " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a decimal", token)
	}
	return f, nil
}
