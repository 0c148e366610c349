package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/calcpress/calcpress/internal/config"
	"github.com/calcpress/calcpress/internal/content"
	"github.com/calcpress/calcpress/internal/history"
	"github.com/calcpress/calcpress/internal/validation"
)

var (
	validateFormat string
	validateQuiet  bool
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Validate converter records in a site document",
	Long: `Validate every converter record in a site document against the content
schema: required fields, per-section structure, conversion matrix
completeness, and the word-count quality gate.

All applicable problems for a record are reported in one pass; a failing
record never stops validation of the rest of the document.

Examples:
  calcpress validate site.config.json            # Validate all records
  calcpress validate site.config.json -f json    # Report as JSON
  calcpress validate site.config.json --quiet    # Summary only`,
	SilenceUsage: true,
	RunE:         runValidateCommand,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text", "Output format (text, json, yaml)")
	validateCmd.Flags().BoolVarP(&validateQuiet, "quiet", "q", false, "Suppress per-record detail, print summary only")
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		fmt.Println("Usage: calcpress validate <file.json>")
		return fmt.Errorf("document path required")
	}
	path := args[0]

	start := time.Now()

	records, err := content.LoadRaw(path)
	if err != nil {
		// Fatal container conditions: unreadable file, unparsable JSON,
		// or a document without a converters array. No per-record
		// validation happens.
		fmt.Printf("❌ %v\n", err)
		return err
	}

	minWords := 0
	if cfg, err := config.Load(); err == nil {
		minWords = cfg.Validation.MinWords
	}

	result := validation.Validate(records, validation.Options{MinWords: minWords})

	switch validateFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return err
		}
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
	case "text":
		printValidationText(result)
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json, yaml)", validateFormat)
	}

	history.Record(history.Run{
		Command:   "validate",
		Document:  path,
		Started:   start,
		Duration:  time.Since(start).Milliseconds(),
		Total:     result.Report.Total,
		Valid:     result.Report.Valid,
		Failed:    result.Report.Failed,
		FailedIDs: result.Report.FailedIDs,
		Success:   result.Report.IsValid,
	})

	if !result.Report.IsValid {
		return fmt.Errorf("validation failed: %d invalid converter(s)", result.Report.Failed)
	}

	return nil
}

func printValidationText(result validation.Result) {
	if !validateQuiet {
		var failedSections []string

		for _, record := range result.Records {
			status := "✅"
			if !record.Valid {
				status = "❌"
			}
			fmt.Printf("%s %s (%d words)\n", status, record.ID, record.WordCount)

			for _, err := range record.Errors {
				fmt.Printf("    Error: %s\n", err)
			}
			failedSections = append(failedSections, validation.FailedSectionTypes(record.Errors)...)
		}

		if len(failedSections) > 0 {
			fmt.Println()
			fmt.Print(validation.StructureGuide(dedupe(failedSections)))
		}

		fmt.Println()
	}

	fmt.Printf("Validation Summary:\n")
	fmt.Printf("  Total converters: %d\n", result.Report.Total)
	fmt.Printf("  Valid: %d\n", result.Report.Valid)
	fmt.Printf("  Failed: %d\n", result.Report.Failed)

	if len(result.Report.FailedIDs) > 0 {
		fmt.Printf("  Failing: %v\n", result.Report.FailedIDs)
	}

	if validateQuiet {
		return
	}

	fmt.Println("\nWord counts:")
	for _, record := range result.Records {
		fmt.Printf("  %-30s %6d\n", record.ID, record.WordCount)
	}

	if len(result.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, warning := range result.Warnings {
			fmt.Printf("  ⚠️  %s\n", warning)
		}
	}

	if result.Report.IsValid {
		fmt.Println("\n✅ All converters are valid!")
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, value := range values {
		if !seen[value] {
			seen[value] = true
			out = append(out, value)
		}
	}
	return out
}
