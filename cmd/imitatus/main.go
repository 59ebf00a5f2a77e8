// imitatus CLI - starts the standalone mock HTTP backend.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/imitatus/imitatus/pkg/config"
	"github.com/imitatus/imitatus/pkg/logging"
	"github.com/imitatus/imitatus/pkg/server"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// serveOptions holds the serve flags. Flags passed explicitly win over
// config file values; tracked via cobra's Changed.
type serveOptions struct {
	configPath string
	host       string
	port       int
	logLevel   string
	logFormat  string
	username   string
	password   string
}

func addServeFlags(cmd *cobra.Command, o *serveOptions) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "path to a YAML or JSON config file")
	cmd.Flags().StringVar(&o.host, "host", "", "interface to bind (default all interfaces)")
	cmd.Flags().IntVarP(&o.port, "port", "p", 8000, "port to listen on")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&o.logFormat, "log-format", "text", "log format (text or json)")
	cmd.Flags().StringVar(&o.username, "username", "", "login username (overrides config)")
	cmd.Flags().StringVar(&o.password, "password", "", "login password (overrides config)")
}

func runServe(cmd *cobra.Command, o *serveOptions) error {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.LoadFromFile(o.configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = o.host
	}
	if flags.Changed("port") {
		cfg.Port = o.port
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if flags.Changed("username") {
		cfg.Credentials.Username = o.username
	}
	if flags.Changed("password") {
		cfg.Credentials.Password = o.password
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.Format(cfg.Logging.Format),
	})

	srv := server.New(cfg, server.WithLogger(log))
	if err := srv.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutting down", "signal", sig.String())
	return srv.Stop()
}

func newRootCmd() *cobra.Command {
	rootOpts := &serveOptions{}
	root := &cobra.Command{
		Use:           "imitatus",
		Short:         "Standalone mock HTTP backend for exercising API clients",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running with no subcommand starts the server.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts)
		},
	}
	addServeFlags(root, rootOpts)

	serveOpts := &serveOptions{}
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the mock server (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, serveOpts)
		},
	}
	addServeFlags(serve, serveOpts)

	root.AddCommand(serve, newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("imitatus %s\n  commit: %s\n  built:  %s\n", Version, Commit, BuildDate)
		},
	}
}
