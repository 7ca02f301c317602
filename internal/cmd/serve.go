package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mthomas46/jirassic-pack-sub000/internal/server"
	"github.com/mthomas46/jirassic-pack-sub000/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	servePort  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics over a read-only HTTP API",
	Long: `Serve the log analytics as JSON over HTTP.

Endpoints:
  GET /healthz                  server and source status
  GET /api/summary              entry counts by level and feature
  GET /api/analytics            registry listing with parameter schemas
  GET /api/analytics/<key>      run one analytic; accepts its declared
                                parameters plus optional filter params
                                (level, feature, correlation_id, start, end)

With --watch the log file is re-parsed whenever it changes on disk.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (default from config: 8077)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload the log file on change")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\njplog shutting down...")
		cancel()
		os.Exit(0)
	}()

	src, err := source.New(resolveLogFile())
	if err != nil {
		return fmt.Errorf("failed to load log source: %w", err)
	}
	if diag := src.Diagnostic(); diag != "" {
		fmt.Fprintln(os.Stderr, diag)
	}

	if serveWatch {
		go func() {
			if err := src.Watch(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "watch disabled: %v\n", err)
			}
		}()
	}

	port := servePort
	if port == "" {
		port = viper.GetString("port")
	}

	fmt.Fprintf(os.Stderr, "jplog serving %s on :%s (%d entries)\n", src.Path(), port, len(src.Entries()))
	return server.New(src, port).Start()
}
