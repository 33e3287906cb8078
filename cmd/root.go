package cmd

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/supportchat/internal/api"
	"github.com/zhubert/supportchat/internal/app"
	"github.com/zhubert/supportchat/internal/config"
	"github.com/zhubert/supportchat/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	logFile               string
	apiURL                string
	userID                int
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "supportchat",
	Short: "Terminal client for the e-commerce customer support assistant",
	Long: `supportchat is a terminal chat client for the customer support assistant.
Ask about products, orders and returns, browse past conversations in the sidebar,
and pick up any of them where you left off.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", logger.DefaultLogPath, "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Chat service base URL (overrides config and "+config.EnvAPIURL+")")
	rootCmd.PersistentFlags().IntVar(&userID, "user-id", 0, "User id sent with every chat request")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
	if logFile != "" {
		if err := logger.Init(logFile); err != nil {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("supportchat %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("supportchat %s\n", version)
}

// loadConfig reads the saved preferences and applies the --api-url and
// --user-id overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if err := applyOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config) error {
	if apiURL != "" {
		if err := config.ValidateAPIURL(apiURL); err != nil {
			return fmt.Errorf("invalid --api-url: %w", err)
		}
		cfg.SetAPIURL(apiURL)
	}
	if userID != 0 {
		if userID < 0 {
			return fmt.Errorf("invalid --user-id %d: must be positive", userID)
		}
		cfg.SetUserID(userID)
	}
	return nil
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// newClient builds a service client from cfg.
func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.GetAPIURL(),
		api.WithUserID(cfg.GetUserID()),
		api.WithTimeout(cfg.RequestTimeout()),
	)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return runApp(cfg)
}

func runApp(cfg *config.Config) error {
	// Ensure logger is closed on exit
	defer logger.Close()

	logger.WithComponent("cmd").Info("starting", "version", version, "apiURL", cfg.GetAPIURL())
	m := app.New(cfg, app.WithVersion(version))
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
