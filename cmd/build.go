package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/calcpress/calcpress/internal/config"
	"github.com/calcpress/calcpress/internal/content"
	"github.com/calcpress/calcpress/internal/generator"
	"github.com/calcpress/calcpress/internal/history"
	"github.com/calcpress/calcpress/internal/validation"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Validate content and generate the static site",
	Long: `Validate the site document and generate the static site into the output
directory: one page per converter, index and blog pages, sitemap.xml,
rss.xml, robots.txt, and copied static assets.

Converters that fail validation are excluded from the output. Unless
--skip-validation is given, any failing converter also fails the build.

Examples:
  calcpress build                     # Build into public/
  calcpress build --output dist       # Build to a specific directory
  calcpress build --clean             # Remove the output directory first
  calcpress build --skip-validation   # Build whatever validates, warn on the rest`,
	SilenceUsage: true,
	RunE:         runBuild,
}

var (
	buildOutput         string
	buildClean          bool
	buildMinify         bool
	buildSkipValidation bool
)

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory (default from config, public/)")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "Remove the output directory before building")
	buildCmd.Flags().BoolVar(&buildMinify, "minify", false, "Minify generated HTML")
	buildCmd.Flags().BoolVar(&buildSkipValidation, "skip-validation", false, "Build valid converters even when others fail")
}

func runBuild(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	output := cfg.Build.Output
	if buildOutput != "" {
		output = buildOutput
	}

	logger := newCLILogger()

	fmt.Println("🔨 Starting build...")

	records, err := content.LoadRaw(cfg.Site.Content)
	if err != nil {
		return fmt.Errorf("failed to load site document: %w", err)
	}

	result := validation.Validate(records, validation.Options{MinWords: cfg.Validation.MinWords})
	if !result.Report.IsValid {
		for _, record := range result.Records {
			if record.Valid {
				continue
			}
			fmt.Printf("❌ %s\n", record.ID)
			for _, e := range record.Errors {
				fmt.Printf("    Error: %s\n", e)
			}
		}
		if !buildSkipValidation {
			return fmt.Errorf("validation failed: %d invalid converter(s); fix them or pass --skip-validation", result.Report.Failed)
		}
		fmt.Printf("⚠️  Skipping %d invalid converter(s)\n", result.Report.Failed)
	}

	doc, err := content.Load(cfg.Site.Content)
	if err != nil {
		return fmt.Errorf("failed to load site document: %w", err)
	}

	doc.Converters = keepValidConverters(doc.Converters, result.Records)

	if buildClean {
		fmt.Printf("🧹 Cleaning %s...\n", output)
		if err := os.RemoveAll(output); err != nil {
			return fmt.Errorf("failed to clean output directory: %w", err)
		}
	}

	gen := generator.New(doc, generator.Options{
		OutputDir:  output,
		StaticDir:  cfg.Build.StaticDir,
		BaseURL:    cfg.Site.BaseURL,
		MinifyHTML: buildMinify || cfg.Build.Minify,
	}, logger)

	genResult, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	for _, warning := range genResult.Warnings {
		fmt.Printf("⚠️  %s\n", warning)
	}
	for _, warning := range result.Warnings {
		fmt.Printf("⚠️  %s\n", warning)
	}

	duration := time.Since(startTime)
	fmt.Printf("✅ Build completed in %v\n", duration)
	fmt.Printf("   - %d pages, %d files\n", len(genResult.Pages), len(genResult.Files))
	fmt.Printf("   - Output written to: %s\n", output)

	history.Record(history.Run{
		Command:   "build",
		Document:  cfg.Site.Content,
		Started:   startTime,
		Duration:  duration.Milliseconds(),
		Total:     result.Report.Total,
		Valid:     result.Report.Valid,
		Failed:    result.Report.Failed,
		FailedIDs: result.Report.FailedIDs,
		Success:   true,
	})

	return nil
}

// keepValidConverters drops converters that failed validation, preserving
// document order. Raw validation records and typed converters decode from
// the same converters array, so filtering matches them by position; an id
// lookup would miss failing records without an id, which are reported
// under a positional placeholder that no typed record carries.
func keepValidConverters(converters []content.Converter, records []validation.RecordResult) []content.Converter {
	kept := converters[:0]
	for i, conv := range converters {
		if i < len(records) && !records[i].Valid {
			continue
		}
		kept = append(kept, conv)
	}
	return kept
}
