package validation

import "fmt"

// checkConversionMatrix sweeps every ordered (from, to) pair drawn from
// supportedUnits, including self-pairs, and requires an explicit numeric
// factor for each. A unit with no top-level entry therefore reports one
// missing-pair error per destination unit rather than a single summary
// error, keeping every diagnostic independently locatable.
//
// Self-conversion factors must equal the literal number 1. Reciprocal and
// chained-formula fallbacks exist in the rendered page script, but they
// are deliberately not accepted here: authored data must be complete.
func checkConversionMatrix(units []string, conversions map[string]any) []string {
	var errs []string

	for _, from := range units {
		row, _ := conversions[from].(map[string]any)
		for _, to := range units {
			value, present := row[to]
			if !present {
				errs = append(errs, fmt.Sprintf("conversions.%s.%s is missing", from, to))
				continue
			}

			factor, numeric := value.(float64)
			if !numeric {
				errs = append(errs, fmt.Sprintf("conversions.%s.%s must be numeric (got %v)", from, to, value))
				continue
			}

			if from == to && factor != 1 {
				errs = append(errs, fmt.Sprintf("conversions.%s.%s must equal 1 (got %v)", from, to, factor))
			}
		}
	}

	return errs
}
