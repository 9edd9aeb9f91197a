//go:build linux

package browser

import "os/exec"

var linuxOpeners = []string{"xdg-open", "x-www-browser", "sensible-browser", "wslview"}

func platformCommand(url string) (string, []string) {
	for _, name := range linuxOpeners {
		if _, err := exec.LookPath(name); err == nil {
			return name, []string{url}
		}
	}
	return "", nil
}
