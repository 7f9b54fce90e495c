package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var nonAmount = regexp.MustCompile(`[^0-9.,]`)

// ParseAmount converts a locale-formatted currency string such as
// "1234,56 DT" into a float. Everything outside digits, commas and periods
// is stripped and the first comma becomes the decimal point. Commas used as
// thousands separators are not handled. Returns 0 when nothing parseable
// remains; never fails.
func ParseAmount(raw string) float64 {
	cleaned := nonAmount.ReplaceAllString(raw, "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}
