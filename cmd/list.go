package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"specinput/internal/output"
	"specinput/internal/platform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows that can receive keystrokes",
	Long:  "List the windows the window manager reports, with their ID, title, class, and desktop.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("title", "", "Filter windows by title substring")
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	windows, err := provider.Lister.ListWindows(ctx, platform.ListOptions{Title: title})
	if err != nil {
		return err
	}

	return output.Print(output.ListResult{Count: len(windows), Windows: windows})
}
