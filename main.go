package main

import (
	"specinput/cmd"

	_ "specinput/internal/platform/x11"
)

func main() {
	cmd.Execute()
}
