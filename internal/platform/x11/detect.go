package x11

import (
	"context"
	"os/exec"
	"time"
)

// Backend identifies which external tool set is driving a component.
type Backend string

const (
	BackendWmctrl  Backend = "wmctrl"
	BackendXdotool Backend = "xdotool"
	BackendNone    Backend = "none"
)

// toolTimeout bounds every external tool invocation. The tools either answer
// promptly or are wedged; there is nothing to wait for beyond this.
const toolTimeout = 2 * time.Second

func hasCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// detectListerBackend probes for a window-enumeration tool, preferring wmctrl.
func detectListerBackend() Backend {
	if hasCommand("wmctrl") {
		return BackendWmctrl
	}
	if hasCommand("xdotool") {
		return BackendXdotool
	}
	return BackendNone
}

// detectSenderBackend probes for a key-injection tool.
func detectSenderBackend() Backend {
	if hasCommand("xdotool") {
		return BackendXdotool
	}
	return BackendNone
}

// runTool executes an external tool call bounded by toolTimeout and returns
// its stdout.
func runTool(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Output()
}
