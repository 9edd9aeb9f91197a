//go:build !linux && !darwin && !windows

package browser

func platformCommand(url string) (string, []string) {
	return "xdg-open", []string{url}
}
