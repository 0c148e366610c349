package validation

import "fmt"

// Report summarizes one validation run over a converter collection.
type Report struct {
	IsValid    bool           `json:"isValid"`
	Total      int            `json:"total"`
	Valid      int            `json:"valid"`
	Failed     int            `json:"failed"`
	FailedIDs  []string       `json:"failedIds"`
	WordCounts map[string]int `json:"wordCounts"`
}

// RecordResult carries the per-record diagnostics behind a Report, in
// input order.
type RecordResult struct {
	ID        string   `json:"id"`
	Valid     bool     `json:"valid"`
	Errors    []string `json:"errors"`
	WordCount int      `json:"wordCount"`
}

// Result is the full outcome of a run: the report plus per-record error
// lists and the globally accumulated warnings. Warnings never affect
// pass/fail.
type Result struct {
	Report   Report         `json:"report"`
	Records  []RecordResult `json:"records"`
	Warnings []string       `json:"warnings"`
}

// Options tunes a validation run.
type Options struct {
	// MinWords overrides the word-count gate; zero selects
	// DefaultMinWords.
	MinWords int
}

// Validate checks every record in input order and aggregates the report.
// It is a pure function of its inputs: records are never mutated, and a
// failing record never stops processing of subsequent ones. A record
// without an id is reported under the positional placeholder
// "converter-<index>".
func Validate(records []map[string]any, opts Options) Result {
	result := Result{
		Report: Report{
			Total:      len(records),
			FailedIDs:  []string{},
			WordCounts: make(map[string]int, len(records)),
		},
	}

	for i, record := range records {
		id := displayID(record, i)

		errs, warnings, wordCount := ValidateRecord(record, id, opts.MinWords)
		result.Warnings = append(result.Warnings, warnings...)
		result.Report.WordCounts[id] = wordCount

		recordResult := RecordResult{
			ID:        id,
			Valid:     len(errs) == 0,
			Errors:    errs,
			WordCount: wordCount,
		}
		result.Records = append(result.Records, recordResult)

		if !recordResult.Valid {
			result.Report.FailedIDs = append(result.Report.FailedIDs, id)
		}
	}

	result.Report.Failed = len(result.Report.FailedIDs)
	result.Report.Valid = result.Report.Total - result.Report.Failed
	result.Report.IsValid = result.Report.Failed == 0

	return result
}

func displayID(record map[string]any, index int) string {
	if id, ok := record["id"].(string); ok && id != "" {
		return id
	}
	return fmt.Sprintf("converter-%d", index)
}
