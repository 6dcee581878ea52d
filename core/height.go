package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	decimalFeetPattern = regexp.MustCompile(`^\d+\.\d+\s*(?:'|ft\.?|feet|foot)`)
	feetInchesPattern  = regexp.MustCompile(`^(\d)\s*(?:'|’|ft\.?|feet|foot)\s*(?:(\d{1,2})\s*(?:"|''|”|in\.?|inch|inches)?)?$`)
	centimeterPattern  = regexp.MustCompile(`^(\d{2,3}(?:\.\d+)?)\s*(?:cm|cms|centimeters?|centimetres?)$`)
	inchesPattern      = regexp.MustCompile(`^(\d{2,3})\s*(?:"|in\.?|inch|inches)$`)
)

const (
	minPlausibleInches = 36
	maxPlausibleInches = 96
)

// ParseHeightInches converts a free-text height such as 5'10", 5ft 10in,
// "5 feet 10 inches", "178 cm" or "70 in" into whole inches. It returns
// false for anything it cannot read unambiguously, including decimal feet.
func ParseHeightInches(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || decimalFeetPattern.MatchString(s) {
		return 0, false
	}

	var inches int
	switch {
	case feetInchesPattern.MatchString(s):
		m := feetInchesPattern.FindStringSubmatch(s)
		feet, _ := strconv.Atoi(m[1])
		rest := 0
		if m[2] != "" {
			rest, _ = strconv.Atoi(m[2])
			if rest >= 12 {
				return 0, false
			}
		}
		inches = feet*12 + rest
	case centimeterPattern.MatchString(s):
		m := centimeterPattern.FindStringSubmatch(s)
		cm, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		inches = int(math.Round(cm / 2.54))
	case inchesPattern.MatchString(s):
		m := inchesPattern.FindStringSubmatch(s)
		inches, _ = strconv.Atoi(m[1])
	default:
		return 0, false
	}

	if inches < minPlausibleInches || inches > maxPlausibleInches {
		return 0, false
	}
	return inches, true
}
