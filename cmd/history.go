package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/calcpress/calcpress/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent validate and build runs",
	Long: `List recent validate/build runs recorded in the local history store
(.calcpress/history.db), newest first.

Examples:
  calcpress history               # Last 20 runs
  calcpress history --limit 5     # Last 5 runs
  calcpress history -f json       # JSON output`,
	SilenceUsage: true,
	RunE:         runHistory,
}

var (
	historyLimit  int
	historyFormat string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum runs to show")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "Output format (text, json)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}

	switch historyFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	case "text":
		if len(runs) == 0 {
			fmt.Println("No recorded runs.")
			return nil
		}
		fmt.Printf("%-20s %-9s %-6s %6s %6s %6s  %s\n", "STARTED", "COMMAND", "OK", "TOTAL", "VALID", "FAILED", "FAILING")
		for _, run := range runs {
			ok := "yes"
			if !run.Success {
				ok = "no"
			}
			fmt.Printf("%-20s %-9s %-6s %6d %6d %6d  %s\n",
				run.Started.Format(time.DateTime), run.Command, ok,
				run.Total, run.Valid, run.Failed, strings.Join(run.FailedIDs, ","))
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", historyFormat)
	}
}
