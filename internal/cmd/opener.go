package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// openURL hands rawURL to $URL_OPENER when it names an executable and to
// the platform opener otherwise. The opener is not waited for, so it may
// outlive the process.
func openURL(rawURL string) error {
	if name := os.Getenv("URL_OPENER"); name != "" {
		path, err := exec.LookPath(name)
		if err == nil {
			err = exec.Command(path, rawURL).Start()
		}
		if err == nil {
			return nil
		}
		fmt.Fprintf(os.Stderr, "Failed to open URL with URL_OPENER=%s: %v\n", name, err)
	}

	name, args := platformOpener()
	return exec.Command(name, append(args, rawURL)...).Start()
}

func platformOpener() (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}
