package cmd

import (
	"github.com/spf13/cobra"

	"specinput/internal/config"
	"specinput/internal/gui"
	"specinput/internal/model"
	"specinput/internal/platform"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the control panel",
	Long: `Open the control panel: pick a window, enter the key sequence and interval,
and toggle the loop with the button or the global hotkey. This is also what
running specinput with no subcommand does.`,
	RunE: runGui,
}

func init() {
	rootCmd.AddCommand(guiCmd)
	guiCmd.Flags().String("setup", "", "Pre-fill the panel from a saved setup")
}

func runGui(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	dir, err := config.DefaultDir()
	if err != nil {
		return err
	}
	mgr, err := config.NewManager(dir)
	if err != nil {
		return err
	}

	var initial model.Setup
	if name, _ := cmd.Flags().GetString("setup"); name != "" {
		if initial, err = mgr.Load(name); err != nil {
			return err
		}
	}

	return gui.Run(provider, mgr, initial)
}
