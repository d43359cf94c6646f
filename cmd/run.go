package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"specinput/internal/config"
	"specinput/internal/model"
	"specinput/internal/output"
	"specinput/internal/platform"
	"specinput/internal/scheduler"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the key-sending loop headless",
	Long: `Run the automation loop without the control panel. The loop keeps sending
the key sequence to the target window at the given interval until Ctrl-C,
the optional duration elapses, or the window stops accepting input.

Examples:
  specinput run --window-id 0x04a00007 --keys space --interval 5s
  specinput run --setup farming --duration 2h
  specinput run --setup farming --interval 30s   # override the saved interval`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("setup", "", "Load target, keys, and interval from a saved setup")
	runCmd.Flags().String("window-id", "", "Target window ID (from `specinput list`)")
	runCmd.Flags().String("keys", "", "Space-separated key sequence")
	runCmd.Flags().String("interval", "", "Interval between cycles, e.g. 5s or 2m,30s")
	runCmd.Flags().String("duration", "", "Stop automatically after this long (same grammar as --interval)")
	runCmd.Flags().Int("max-failures", 0, "Consecutive failures before giving up (0 = default, -1 = never)")
}

func runRun(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	setup, err := resolveRunSetup(cmd)
	if err != nil {
		return err
	}
	maxFailures, _ := cmd.Flags().GetInt("max-failures")

	var duration time.Duration
	if s, _ := cmd.Flags().GetString("duration"); s != "" {
		duration, err = config.ParseInterval(s)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
	}

	var mu sync.Mutex
	runs := 0
	deactivated := make(chan string, 1)

	loop := scheduler.New(provider.Sender)
	err = loop.Start(scheduler.Config{
		WindowID:    setup.WindowID,
		Keys:        setup.Keys,
		Interval:    setup.Interval,
		MaxFailures: maxFailures,
		OnCycle: func(n int) {
			mu.Lock()
			runs = n
			mu.Unlock()
		},
		OnDeactivate: func(reason string) {
			deactivated <- reason
		},
	})
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var timeout <-chan time.Time
	if duration > 0 {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		timeout = timer.C
	}

	reason := ""
	select {
	case <-sigCh:
		loop.Stop()
	case <-timeout:
		loop.Stop()
		reason = "duration elapsed"
	case reason = <-deactivated:
	}

	mu.Lock()
	total := runs
	mu.Unlock()
	return output.Print(output.RunResult{
		WindowID: setup.WindowID,
		Runs:     total,
		Interval: config.FormatInterval(setup.Interval),
		Reason:   reason,
	})
}

// resolveRunSetup merges a saved setup (if --setup was given) with the
// command-line flags; flags win.
func resolveRunSetup(cmd *cobra.Command) (model.Setup, error) {
	var setup model.Setup

	if name, _ := cmd.Flags().GetString("setup"); name != "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return model.Setup{}, err
		}
		mgr, err := config.NewManager(dir)
		if err != nil {
			return model.Setup{}, err
		}
		if setup, err = mgr.Load(name); err != nil {
			return model.Setup{}, err
		}
	}

	if id, _ := cmd.Flags().GetString("window-id"); id != "" {
		setup.WindowID = id
	}
	if keysArg, _ := cmd.Flags().GetString("keys"); keysArg != "" {
		keys, err := model.ParseKeys(keysArg)
		if err != nil {
			return model.Setup{}, err
		}
		setup.Keys = keys
	}
	if s, _ := cmd.Flags().GetString("interval"); s != "" {
		interval, err := config.ParseInterval(s)
		if err != nil {
			return model.Setup{}, err
		}
		setup.Interval = interval
	}

	if setup.WindowID == "" {
		return model.Setup{}, fmt.Errorf("no target window: pass --window-id or --setup")
	}
	if len(setup.Keys) == 0 {
		return model.Setup{}, fmt.Errorf("no keys to send: pass --keys or --setup")
	}
	if setup.Interval <= 0 {
		return model.Setup{}, fmt.Errorf("no interval: pass --interval or --setup")
	}
	return setup, nil
}
