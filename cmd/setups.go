package cmd

import (
	"github.com/spf13/cobra"

	"specinput/internal/config"
	"specinput/internal/output"
)

var setupsCmd = &cobra.Command{
	Use:   "setups",
	Short: "List saved setups",
	Long:  "List the setups saved from the control panel or the MCP server, by name.",
	RunE:  runSetups,
}

func init() {
	rootCmd.AddCommand(setupsCmd)
}

func runSetups(cmd *cobra.Command, args []string) error {
	dir, err := config.DefaultDir()
	if err != nil {
		return err
	}
	mgr, err := config.NewManager(dir)
	if err != nil {
		return err
	}
	names, err := mgr.List()
	if err != nil {
		return err
	}
	return output.Print(output.SetupsResult{Count: len(names), Setups: names})
}
