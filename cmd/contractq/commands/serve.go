package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/logger"
	"github.com/teranos/contractq/server"
	"github.com/teranos/contractq/sym"
	"github.com/teranos/contractq/version"
)

// ServeCmd starts the HTTP and WebSocket server
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   sym.Server + " Start the classification server",
	Long: sym.Server + ` serve - Start the HTTP and WebSocket server

Serves /api/classify, /api/classify/batch, /api/diagnose, /api/stats,
/api/history, /metrics, /health and /ws. Ctrl+C drains in-flight
requests; a second Ctrl+C exits immediately.

Examples:
  contractq serve
  contractq serve --port 9000`,
	RunE: runServe,
}

var servePort int

func init() {
	ServeCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	port := cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}

	p, err := newPipeline(cfg, true)
	if err != nil {
		return errors.Wrap(err, "build classifier")
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	p.startJanitor(ctx, cfg)

	opts := []server.Option{server.WithLogger(logger.ComponentLogger("server"))}
	if p.journal != nil {
		opts = append(opts, server.WithJournal(p.journal))
	}
	srv := server.New(p.classifier, cfg.Server, opts...)

	printBanner(port, cfg.Journal.Enabled, cfg.Journal.Path, p.cache != nil)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx, port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server stopped")
	case <-sigCh:
	}

	pterm.Info.Println("Shutting down gracefully (press Ctrl+C again to force)...")
	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "shutdown")
		}
		pterm.Success.Println("Server stopped cleanly")
		return nil
	case <-sigCh:
		pterm.Warning.Println("Force shutdown - exiting immediately")
		os.Exit(1)
		return nil
	}
}

func printBanner(port int, journalEnabled bool, journalPath string, cached bool) {
	pterm.Printf("%s contractq %s\n", sym.Server, version.Get().Short())
	pterm.Printf("  %s http://localhost:%d\n", pterm.LightCyan("listen"), port)
	if cached {
		pterm.Printf("  %s %s result cache on\n", pterm.LightCyan("cache "), sym.Cache)
	}
	if journalEnabled {
		pterm.Printf("  %s %s %s\n", pterm.LightCyan("journal"), sym.DB, journalPath)
	} else {
		pterm.Printf("  %s %s\n", pterm.LightCyan("journal"), pterm.Gray("off"))
	}
	fmt.Println()
}
