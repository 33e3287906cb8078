package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/supportchat/internal/config"
	"github.com/zhubert/supportchat/internal/logger"
)

var resetConfig bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files and, optionally, saved preferences",
	Long: `Removes the client log file. With --config it also deletes the saved
preferences file so the next start uses defaults.

Conversations live on the chat service and are never touched; use
"supportchat sessions delete" for those.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().BoolVar(&resetConfig, "config", false, "Also remove the saved preferences file")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(cmd.OutOrStdout(), os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(out io.Writer, input io.Reader) error {
	var configFile string
	if resetConfig {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if _, err := os.Stat(cfg.FilePath()); err == nil {
			configFile = cfg.FilePath()
		}
	}

	logFiles := existingLogFiles()
	if len(logFiles) == 0 && configFile == "" {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	// Print summary of what will be cleaned
	fmt.Fprintln(out, "This will clean:")
	for _, f := range logFiles {
		fmt.Fprintf(out, "  - log file %s\n", f)
	}
	if configFile != "" {
		fmt.Fprintf(out, "  - preferences %s\n", configFile)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	logsCleared, err := logger.ClearLogs(logFiles...)
	if err != nil {
		fmt.Fprintf(out, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	if logsCleared > 0 {
		fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	}
	if configFile != "" {
		if err := os.Remove(configFile); err != nil {
			return fmt.Errorf("error removing preferences: %w", err)
		}
		fmt.Fprintln(out, "  - preferences reset")
	}
	return nil
}

// existingLogFiles returns the --log-file path when it exists.
func existingLogFiles() []string {
	if logFile == "" {
		return nil
	}
	if _, err := os.Stat(logFile); err != nil {
		return nil
	}
	return []string{logFile}
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
