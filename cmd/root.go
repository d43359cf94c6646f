package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"specinput/internal/output"
	"specinput/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "specinput",
	Short: "Send periodic keystrokes to a background window",
	Long: `specinput keeps a selected window fed with keystrokes at a fixed interval,
without stealing focus from whatever you are doing. Running it with no
subcommand opens the control panel.`,
	RunE: runGui,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty
		return nil
	}
}
