package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"specinput/internal/model"
	"specinput/internal/output"
	"specinput/internal/platform"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a key sequence to a window once",
	Long: `Send a space-separated key sequence to a window a single time, without
starting a loop. Useful for checking that a window accepts synthetic input
before automating it.

Examples:
  specinput send --window-id 0x04a00007 --keys "w a s d"
  specinput send --window-id 0x04a00007 --keys space --hold 0.25 --repeat 3`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().String("window-id", "", "Target window ID (from `specinput list`)")
	sendCmd.Flags().String("keys", "", "Space-separated key sequence, e.g. \"w a s d\"")
	sendCmd.Flags().Float64("hold", 0, "Hold time in seconds applied to every key (0 = default)")
	sendCmd.Flags().Int("repeat", 1, "Presses per key")
	sendCmd.Flags().Float64("wait", 0, "Pause in seconds after each key")
	sendCmd.MarkFlagRequired("window-id")
	sendCmd.MarkFlagRequired("keys")
}

func runSend(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	windowID, _ := cmd.Flags().GetString("window-id")
	keysArg, _ := cmd.Flags().GetString("keys")
	hold, _ := cmd.Flags().GetFloat64("hold")
	repeat, _ := cmd.Flags().GetInt("repeat")
	wait, _ := cmd.Flags().GetFloat64("wait")

	keys, err := model.ParseKeys(keysArg)
	if err != nil {
		return err
	}
	if repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", repeat)
	}
	for i := range keys {
		if hold > 0 {
			keys[i].Hold = time.Duration(hold * float64(time.Second))
		}
		keys[i].Repeat = repeat
		if wait > 0 {
			keys[i].Wait = time.Duration(wait * float64(time.Second))
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	if err := provider.Sender.SendKeys(ctx, windowID, keys); err != nil {
		return err
	}

	return output.Print(output.SendResult{
		WindowID: windowID,
		Keys:     model.KeyNames(keys),
		Sent:     true,
	})
}
