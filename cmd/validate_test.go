package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calcpress/calcpress/internal/content"
	"github.com/calcpress/calcpress/internal/validation"
)

func TestValidateRequiresDocumentArg(t *testing.T) {
	err := runValidateCommand(validateCmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "document path required")
}

func TestValidateMissingFileIsFatal(t *testing.T) {
	err := runValidateCommand(validateCmd, []string{filepath.Join(t.TempDir(), "absent.json")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestValidateDocumentWithoutConvertersIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"site": {}}`), 0o644))

	err := runValidateCommand(validateCmd, []string{path})

	assert.ErrorIs(t, err, content.ErrNoConverters)
}

func TestDedupe(t *testing.T) {
	out := dedupe([]string{"hero", "tips", "hero", "faq", "tips"})
	assert.Equal(t, []string{"hero", "tips", "faq"}, out)
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func sampleResult() validation.Result {
	return validation.Result{
		Report: validation.Report{
			IsValid:    false,
			Total:      2,
			Valid:      1,
			Failed:     1,
			FailedIDs:  []string{"oven-temps"},
			WordCounts: map[string]int{"cups-to-grams": 1200, "oven-temps": 40},
		},
		Records: []validation.RecordResult{
			{ID: "cups-to-grams", Valid: true, WordCount: 1200},
			{ID: "oven-temps", Valid: false, WordCount: 40, Errors: []string{`missing required field "slug"`}},
		},
	}
}

func TestValidateTextOutput(t *testing.T) {
	validateQuiet = false
	t.Cleanup(func() { validateQuiet = false })

	out := captureStdout(t, func() { printValidationText(sampleResult()) })

	assert.Contains(t, out, "✅ cups-to-grams (1200 words)")
	assert.Contains(t, out, "❌ oven-temps (40 words)")
	assert.Contains(t, out, `Error: missing required field "slug"`)
	assert.Contains(t, out, "Word counts:")
	assert.Contains(t, out, "Validation Summary:")
}

// --quiet prints the summary block and nothing else.
func TestValidateQuietOutput(t *testing.T) {
	validateQuiet = true
	t.Cleanup(func() { validateQuiet = false })

	out := captureStdout(t, func() { printValidationText(sampleResult()) })

	assert.Contains(t, out, "Validation Summary:")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "Failing: [oven-temps]")
	assert.NotContains(t, out, "Error:")
	assert.NotContains(t, out, "Word counts:")
	assert.NotContains(t, out, "cups-to-grams (1200 words)")
}
