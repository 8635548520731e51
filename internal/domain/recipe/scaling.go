package recipe

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// amountPattern captures a leading numeric token (decimal or simple fraction)
// and the unit text that follows. Amounts that do not match ("to taste",
// "a pinch") are passed through unscaled.
var amountPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?(?:/\d+)?)\s*(.*)$`)

// ScaleAmount rescales a quantity-plus-unit string from one serving count to
// another. The unit text is preserved verbatim. Unparsable amounts are
// returned unchanged; that is the defined fallback, not an error.
func ScaleAmount(amount string, fromServings, toServings int) string {
	if fromServings < 1 || toServings < 1 {
		return amount
	}

	match := amountPattern.FindStringSubmatch(amount)
	if match == nil {
		return amount
	}
	numberPart, unit := match[1], match[2]

	var value float64
	if num, den, ok := strings.Cut(numberPart, "/"); ok {
		n, _ := strconv.ParseFloat(num, 64)
		d, _ := strconv.ParseFloat(den, 64)
		if d == 0 {
			return amount
		}
		value = n / d
	} else {
		v, err := strconv.ParseFloat(numberPart, 64)
		if err != nil {
			return amount
		}
		value = v
	}

	scaled := value * float64(toServings) / float64(fromServings)
	return strings.TrimSpace(formatAmount(scaled) + " " + unit)
}

// formatAmount renders a scaled quantity: two decimals below 0.1, one decimal
// below 1, none when integral, otherwise one decimal. Trailing zeros and a
// dangling decimal point are trimmed.
func formatAmount(v float64) string {
	var s string
	switch {
	case v < 0.1:
		s = strconv.FormatFloat(v, 'f', 2, 64)
	case v < 1:
		s = strconv.FormatFloat(v, 'f', 1, 64)
	case math.Mod(v, 1) == 0:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		s = strconv.FormatFloat(v, 'f', 1, 64)
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// ScaleNutrition rescales full-recipe macros to a new serving count. Each
// field is rounded independently, so the rescaled macros can drift from the
// exact scale by up to one unit per field.
func ScaleNutrition(n Nutrition, fromServings, toServings int) Nutrition {
	if fromServings < 1 || toServings < 1 {
		return n
	}
	factor := float64(toServings) / float64(fromServings)
	return Nutrition{
		Calories: int(math.Round(float64(n.Calories) * factor)),
		Protein:  int(math.Round(float64(n.Protein) * factor)),
		Carbs:    int(math.Round(float64(n.Carbs) * factor)),
		Fat:      int(math.Round(float64(n.Fat) * factor)),
	}
}
