package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenBrowser launches the default browser at the given URL so the user
// can reach the Google consent page. The command is started without
// waiting; a failure here is not fatal because the URL is also printed
// for manual use.
func OpenBrowser(url string) error {
	cmd, err := browserCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

func browserCommand(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", url), nil
	}
	return nil, fmt.Errorf("unsupported platform: %s", goos)
}
