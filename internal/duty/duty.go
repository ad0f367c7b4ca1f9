// Package duty parses raw duty cell values and renders the display
// strings the rest of the pipeline carries opaquely.
package duty

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Value is a parsed duty amount with its unit. A percentage of 10% is
// stored as 0.10 with unit "percentage"; specific duties keep the
// amount as-is with a unit like "INR/kg".
type Value struct {
	Amount float64
	Unit   string
}

const PercentUnit = "percentage"

var (
	currencyRe = regexp.MustCompile(`(?i)^(?:Rs\.?|₹)?\s*([\d.]+)\s*/\s*(\w+)$`)
	numberRe   = regexp.MustCompile(`^[\d.]+$`)
)

// Parse interprets a raw duty cell. Recognized forms:
//
//	"Rs. 42 / kg", "₹42/kg", "120/kg"  -> 42 INR/kg
//	"10", "7.5"                        -> 0.10 / 0.075 percentage
//
// Anything else returns ok=false.
func Parse(raw string) (Value, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}, false
	}

	if m := currencyRe.FindStringSubmatch(s); m != nil {
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Value{}, false
		}
		return Value{Amount: amount, Unit: "INR/" + m[2]}, true
	}

	if numberRe.MatchString(s) {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, false
		}
		return Value{Amount: n / 100.0, Unit: PercentUnit}, true
	}

	return Value{}, false
}

// Format renders a parsed value for display: "10.00%" for percentages,
// "42.00 INR/kg" otherwise.
func Format(v Value) string {
	if v.Unit == PercentUnit {
		return fmt.Sprintf("%.2f%%", v.Amount*100)
	}
	return fmt.Sprintf("%.2f %s", v.Amount, v.Unit)
}

// Display parses and formats in one step, returning "" for
// unparseable input.
func Display(raw string) string {
	v, ok := Parse(raw)
	if !ok {
		return ""
	}
	return Format(v)
}
