package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/zhubert/supportchat/internal/api"
)

const healthTimeout = 5 * time.Second

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the chat service is reachable",
	Long: `Calls the service health endpoint and prints its status.
Exits non-zero when the service is unreachable or reports itself unhealthy.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(commandContext(cmd), healthTimeout)
	defer cancel()
	return checkHealth(ctx, newClient(cfg), cmd.OutOrStdout())
}

func checkHealth(ctx context.Context, client *api.Client, out io.Writer) error {
	status, err := client.Health(ctx)
	if err != nil {
		return fmt.Errorf("service at %s is unreachable: %w", client.BaseURL(), err)
	}

	fmt.Fprintf(out, "Service: %s\n", client.BaseURL())
	fmt.Fprintf(out, "  Status: %s\n", status.Status)
	if status.Service != "" {
		fmt.Fprintf(out, "  Name:   %s\n", status.Service)
	}
	if !status.Healthy() {
		return fmt.Errorf("service at %s reports status %q", client.BaseURL(), status.Status)
	}
	return nil
}
