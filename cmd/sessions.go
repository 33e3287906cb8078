package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/zhubert/supportchat/internal/api"
	"github.com/zhubert/supportchat/internal/ui"
)

var skipConfirm bool

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List, show and delete conversations",
	Long: `Work with the conversations stored by the chat service without starting the TUI.

Examples:
  supportchat sessions list
  supportchat sessions show 3f2a9c
  supportchat sessions delete 3f2a9c --yes`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := sessionsClient()
		if err != nil {
			return err
		}
		return listSessions(cmd, client, time.Now())
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the transcript of a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sessionsClient()
		if err != nil {
			return err
		}
		return showSession(cmd, client, api.SessionID(args[0]))
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sessionsClient()
		if err != nil {
			return err
		}
		return deleteSession(cmd, client, api.SessionID(args[0]), os.Stdin)
	},
}

func init() {
	sessionsDeleteCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func sessionsClient() (*api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newClient(cfg), nil
}

func listSessions(cmd *cobra.Command, client *api.Client, now time.Time) error {
	out := cmd.OutOrStdout()
	sessions, err := client.ListSessions(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No conversations yet.")
		return nil
	}

	for _, s := range sessions {
		fmt.Fprintf(out, "  %-40s %-10s %s\n", s.ID, ui.RecencyLabel(s.CreatedAt, now), ui.Preview(s))
	}
	return nil
}

func showSession(cmd *cobra.Command, client *api.Client, id api.SessionID) error {
	messages, err := client.GetSession(commandContext(cmd), id)
	if err != nil {
		return fmt.Errorf("failed to load conversation %s: %w", id, err)
	}
	printTranscript(cmd.OutOrStdout(), id, messages)
	return nil
}

func printTranscript(out io.Writer, id api.SessionID, messages []api.Message) {
	fmt.Fprintln(out, ui.RowTitle(id))
	if len(messages) == 0 {
		fmt.Fprintln(out, "  No messages yet")
		return
	}
	for _, m := range messages {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "[%s] %s\n", speaker(m.Role), api.FormatTimestamp(m.Timestamp))
		fmt.Fprintln(out, m.Content)
	}
}

func speaker(role api.Role) string {
	if role == api.RoleUser {
		return "You"
	}
	return "Assistant"
}

func deleteSession(cmd *cobra.Command, client *api.Client, id api.SessionID, input io.Reader) error {
	out := cmd.OutOrStdout()
	if !skipConfirm {
		if !confirm(input, out, fmt.Sprintf("Delete %s?", ui.RowTitle(id))) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := client.DeleteSession(commandContext(cmd), id); err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", id, err)
	}
	fmt.Fprintf(out, "Deleted %s.\n", ui.RowTitle(id))
	return nil
}
