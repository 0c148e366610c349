//go:build property

package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestMatrixProperties validates conversion-matrix sweep properties
func TestMatrixProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: a complete matrix with exact self-factors always passes
	properties.Property("complete matrix passes", prop.ForAll(
		func(unitCount int) bool {
			if unitCount < 1 || unitCount > 8 {
				return true
			}

			units := make([]string, unitCount)
			for i := range units {
				units[i] = fmt.Sprintf("u%d", i)
			}

			conversions := map[string]any{}
			for _, from := range units {
				row := map[string]any{}
				for _, to := range units {
					if from == to {
						row[to] = 1.0
					} else {
						row[to] = 2.5
					}
				}
				conversions[from] = row
			}

			return len(checkConversionMatrix(units, conversions)) == 0
		},
		gen.IntRange(1, 8),
	))

	// Property: an empty conversions object reports exactly n*n missing pairs
	properties.Property("empty matrix reports n squared missing pairs", prop.ForAll(
		func(unitCount int) bool {
			if unitCount < 1 || unitCount > 8 {
				return true
			}

			units := make([]string, unitCount)
			for i := range units {
				units[i] = fmt.Sprintf("u%d", i)
			}

			errs := checkConversionMatrix(units, map[string]any{})
			if len(errs) != unitCount*unitCount {
				return false
			}
			for _, err := range errs {
				if !strings.HasSuffix(err, " is missing") {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
	))

	// Property: a self-factor other than exactly 1 always fails with the
	// offending value in the message
	properties.Property("inexact self-factor fails", prop.ForAll(
		func(factor float64) bool {
			if factor == 1.0 {
				return true
			}

			conversions := map[string]any{"g": map[string]any{"g": factor}}
			errs := checkConversionMatrix([]string{"g"}, conversions)

			return len(errs) == 1 &&
				strings.Contains(errs[0], "must equal 1") &&
				strings.Contains(errs[0], fmt.Sprintf("%v", factor))
		},
		gen.Float64Range(-100, 100),
	))

	properties.TestingRun(t)
}

// TestWordCountProperties validates word-count extraction properties
func TestWordCountProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: word counting is deterministic for the same record
	properties.Property("word count is deterministic", prop.ForAll(
		func(title string, description string) bool {
			record := map[string]any{"title": title, "description": description}
			return CountWords(record) == CountWords(record)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	// Property: the count equals the sum of the per-field counts
	properties.Property("word count is additive over fields", prop.ForAll(
		func(title string, description string) bool {
			total := CountWords(map[string]any{"title": title, "description": description})
			titleOnly := CountWords(map[string]any{"title": title})
			descOnly := CountWords(map[string]any{"description": description})
			return total == titleOnly+descOnly
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	// Property: non-string leaves never contribute words
	properties.Property("numeric leaves contribute nothing", prop.ForAll(
		func(value float64) bool {
			record := map[string]any{
				"contentSections": map[string]any{
					"hero": map[string]any{"value": value},
				},
			}
			return CountWords(record) == 0
		},
		gen.Float64(),
	))

	properties.TestingRun(t)
}

// TestValidateProperties validates aggregation properties of a run
func TestValidateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(9753)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: valid + failed always equals total, and IsValid tracks failed
	properties.Property("report counts are consistent", prop.ForAll(
		func(goodCount int, badCount int) bool {
			if goodCount < 0 || goodCount > 10 || badCount < 0 || badCount > 10 {
				return true
			}

			var records []map[string]any
			for i := 0; i < goodCount; i++ {
				record := validRecord()
				record["id"] = fmt.Sprintf("good-%d", i)
				records = append(records, record)
			}
			for i := 0; i < badCount; i++ {
				record := validRecord()
				record["id"] = fmt.Sprintf("bad-%d", i)
				delete(record, "slug")
				records = append(records, record)
			}

			result := Validate(records, Options{})
			report := result.Report

			return report.Total == goodCount+badCount &&
				report.Valid+report.Failed == report.Total &&
				report.Failed == badCount &&
				len(report.FailedIDs) == badCount &&
				report.IsValid == (badCount == 0)
		},
		gen.IntRange(0, 10),
		gen.IntRange(0, 10),
	))

	// Property: validation never mutates the input records
	properties.Property("records are not mutated", prop.ForAll(
		func(count int) bool {
			if count < 1 || count > 5 {
				return true
			}

			var records []map[string]any
			for i := 0; i < count; i++ {
				records = append(records, validRecord())
			}
			sizes := make([]int, count)
			for i, record := range records {
				sizes[i] = len(record)
			}

			Validate(records, Options{})

			for i, record := range records {
				if len(record) != sizes[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}
