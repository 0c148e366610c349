package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/calcpress/calcpress/internal/config"
	"github.com/calcpress/calcpress/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the site when content changes",
	Long: `Watch the site document and static assets and rebuild automatically on
change, without starting the preview server.

Examples:
  calcpress watch             # Rebuild on changes
  calcpress watch --verbose   # Show each changed file`,
	SilenceUsage: true,
	RunE:         runWatch,
}

var watchVerbose bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Verbose output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runBuild(cmd, nil); err != nil {
		fmt.Fprintf(os.Stderr, "initial build failed: %v\n", err)
	}

	output := cfg.Build.Output
	if buildOutput != "" {
		output = buildOutput
	}

	contentWatcher, err := watcher.New(300 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer contentWatcher.Stop()

	contentWatcher.AddFilter(watcher.NoHiddenFilter)
	contentWatcher.AddFilter(watcher.NoOutputFilter(output))
	contentWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		if watchVerbose {
			fmt.Printf("📁 File changes detected:\n")
			for _, event := range events {
				fmt.Printf("   %s: %s\n", event.Type, event.Path)
			}
		} else {
			fmt.Printf("📁 %d file(s) changed\n", len(events))
		}

		if err := runBuild(cmd, nil); err != nil {
			fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
		}
		return nil
	})

	if err := contentWatcher.AddPath(cfg.Site.Content); err != nil {
		return fmt.Errorf("cannot watch %s: %w", cfg.Site.Content, err)
	}
	if _, err := os.Stat(cfg.Build.StaticDir); err == nil {
		if err := contentWatcher.AddPath(cfg.Build.StaticDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", cfg.Build.StaticDir, err)
		}
	}

	contentWatcher.Start(ctx)

	fmt.Println("👀 Watching for changes. Press Ctrl+C to stop.")
	<-ctx.Done()

	return nil
}
