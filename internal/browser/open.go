// Package browser opens a URL in the user's default browser, for the
// OAuth login flow's "open this page to authorize" step.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open launches the default browser pointed at url.
func Open(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
