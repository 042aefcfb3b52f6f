package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nexus/internal/apps"
	"nexus/internal/assistant"
	"nexus/internal/config"
	"nexus/internal/logging"
	"nexus/internal/setup"
	"nexus/internal/ui"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	version  = "0.1.0"
	cfgFile  string
	model    string
	logLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nexus",
		Short: "Natural-language assistant that turns requests into actions",
		Long: `Nexus classifies a request (play a song, call someone, open an app,
find a place, search the web) and answers with text plus links you can
open: a YouTube video, a tel: link, an app scheme, a maps search.
Without a subcommand it starts the terminal chat.`,
		SilenceUsage: true,
		RunE:         runChat,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/nexus/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "classifier model (default is "+config.DefaultModel+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newAskCmd(),
		&cobra.Command{
			Use:   "chat",
			Short: "Start the terminal chat",
			Args:  cobra.NoArgs,
			RunE:  runChat,
		},
		newServeCmd(),
		&cobra.Command{
			Use:   "apps",
			Short: "List the apps Nexus can open",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				for _, name := range apps.Names() {
					scheme, _ := apps.Lookup(name)
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, scheme)
				}
			},
		},
		&cobra.Command{
			Use:   "config",
			Short: "Print the effective configuration with keys masked",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				out, err := yaml.Marshal(cfg.Redacted())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			},
		},
		&cobra.Command{
			Use:   "setup",
			Short: "Run the setup wizard",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return setup.RunSetupWizard()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("nexus version %s\n", version)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if model != "" {
		cfg.Model.Name = model
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	cfg.Version = version
	return cfg, nil
}

// loadValidConfig is loadConfig plus validation. On an interactive
// terminal a missing key starts the setup wizard.
func loadValidConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if errors.Is(err, config.ErrMissingAuth) && cfgFile == "" && interactive() {
		if err := setup.RunSetupWizard(); err != nil {
			return nil, err
		}
		if cfg, err = loadConfig(); err != nil {
			return nil, err
		}
		err = cfg.Validate()
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidConfig()
	if err != nil {
		return err
	}

	// The UI owns the terminal, so logs go to a file.
	level := logging.ParseLevel(cfg.Logging.Level)
	if err := logging.EnableFileLogging(config.GetConfigDir(), level); err != nil {
		logging.Configure(level, nil)
		logging.Warn("file logging unavailable", "error", err)
	}
	defer logging.Close()

	ctx, stop := signalContext()
	defer stop()

	services, err := assistant.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer services.Close()

	return ui.Run(ctx, services.Assistant, ui.Options{
		AutoOpen: cfg.Output.AutoOpen,
		Markdown: cfg.Output.Markdown,
	})
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
