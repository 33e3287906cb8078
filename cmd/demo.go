package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zhubert/supportchat/internal/config"
	"github.com/zhubert/supportchat/internal/demo"
)

var (
	demoScenario  string
	demoAddr      string
	demoServeOnly bool
	demoEmpty     bool
	demoNoDelay   bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the client against a built-in demo service",
	Long: `Starts an in-process chat service on a loopback port that answers from a
scripted scenario, then opens the TUI against it. Nothing is sent over the network.

Examples:
  supportchat demo                          # Built-in scenario with sample history
  supportchat demo --scenario replies.yaml  # Custom canned replies
  supportchat demo --serve-only --addr 127.0.0.1:8000`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoScenario, "scenario", "", "YAML scenario file (defaults to the built-in script)")
	demoCmd.Flags().StringVar(&demoAddr, "addr", "127.0.0.1:0", "Address for the demo service")
	demoCmd.Flags().BoolVar(&demoServeOnly, "serve-only", false, "Only run the service, without the TUI")
	demoCmd.Flags().BoolVar(&demoEmpty, "empty", false, "Start without sample conversations")
	demoCmd.Flags().BoolVar(&demoNoDelay, "no-delay", false, "Answer immediately instead of pausing like a real assistant")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	base, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newDemoService(base.GetUserID())
	if err != nil {
		return err
	}
	srv, err := demo.Listen(demoAddr, svc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if demoServeOnly {
		return srv.Serve(ctx, cmd.OutOrStdout())
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ctx, nil) }()

	dir, err := os.MkdirTemp("", "supportchat-demo-")
	if err != nil {
		stop()
		<-errc
		return fmt.Errorf("demo: %w", err)
	}
	defer os.RemoveAll(dir)

	cfg, err := demoConfig(base, srv.URL(), dir)
	if err == nil {
		err = runApp(cfg)
	}
	stop()
	if serveErr := <-errc; err == nil {
		err = serveErr
	}
	return err
}

// newDemoService builds the fake service from the --scenario, --empty and
// --no-delay flags.
func newDemoService(userID int) (*demo.Service, error) {
	scenario := demo.DefaultScenario()
	if demoScenario != "" {
		s, err := demo.LoadScenario(demoScenario)
		if err != nil {
			return nil, err
		}
		scenario = s
	}

	opts := []demo.Option{demo.WithScenario(scenario)}
	if demoNoDelay {
		opts = append(opts, demo.WithoutDelay())
	}
	svc := demo.New(opts...)
	if !demoEmpty {
		scenario.Seed(svc.Store(), userID)
	}
	return svc, nil
}

// demoConfig returns preferences pointed at the demo service. They are backed
// by a file in dir so saving settings during a demo leaves the user's
// config untouched.
func demoConfig(base *config.Config, url, dir string) (*config.Config, error) {
	cfg, err := config.LoadFrom(filepath.Join(dir, "config.json"))
	if err != nil {
		return nil, err
	}
	cfg.SetAPIURL(url)
	cfg.SetUserID(base.GetUserID())
	cfg.SetTheme(base.GetTheme())
	cfg.SetNotificationsEnabled(base.GetNotificationsEnabled())
	cfg.SetConfirmDelete(base.ShouldConfirmDelete())
	return cfg, nil
}
