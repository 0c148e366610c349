package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/calcpress/calcpress/internal/config"
	"github.com/calcpress/calcpress/internal/server"
	"github.com/calcpress/calcpress/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it with live reload",
	Long: `Build the site, serve the output directory over HTTP, and rebuild on
content changes. Connected browsers reload automatically after each
rebuild unless --no-reload is given.

Examples:
  calcpress serve                 # Serve on the configured host/port
  calcpress serve --port 3000     # Override the port
  calcpress serve --no-reload     # Plain static serving`,
	SilenceUsage: true,
	RunE:         runServe,
}

var (
	servePort     int
	serveHost     string
	serveNoReload bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to serve on (default from config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind (default from config)")
	serveCmd.Flags().BoolVar(&serveNoReload, "no-reload", false, "Disable live reload")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runBuild(cmd, nil); err != nil {
		return err
	}

	output := cfg.Build.Output
	if buildOutput != "" {
		output = buildOutput
	}

	previewServer := server.New(host, port, output, !serveNoReload, newCLILogger())

	contentWatcher, err := watcher.New(300 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer contentWatcher.Stop()

	contentWatcher.AddFilter(watcher.NoHiddenFilter)
	contentWatcher.AddFilter(watcher.NoOutputFilter(output))
	contentWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		fmt.Printf("📁 %d file(s) changed, rebuilding...\n", len(events))
		if err := runBuild(cmd, nil); err != nil {
			fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
			return nil
		}
		previewServer.NotifyReload()
		return nil
	})

	if err := contentWatcher.AddPath(cfg.Site.Content); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", cfg.Site.Content, err)
	}
	if _, err := os.Stat(cfg.Build.StaticDir); err == nil {
		if err := contentWatcher.AddPath(cfg.Build.StaticDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", cfg.Build.StaticDir, err)
		}
	}
	contentWatcher.Start(ctx)

	fmt.Printf("🌐 Serving %s on http://%s:%d\n", output, host, port)

	return previewServer.Start(ctx)
}
