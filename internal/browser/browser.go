package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Opener launches URLs in a browser without waiting for it.
type Opener struct {
	command string
	logger  *slog.Logger
}

// NewOpener creates an opener. Priority: command → $BROWSER → platform default.
func NewOpener(command string, logger *slog.Logger) *Opener {
	return &Opener{command: command, logger: logger}
}

func (o *Opener) Open(url string) error {
	if url == "" {
		return errors.New("no url provided")
	}

	name, args, err := o.resolve(url)
	if err != nil {
		return err
	}

	o.logger.Debug("opening url", "url", url, "cmd", name)

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			o.logger.Warn("browser exited with error", "cmd", name, "url", url, "err", err)
		}
	}()

	return nil
}

func (o *Opener) resolve(url string) (string, []string, error) {
	if fields := strings.Fields(o.command); len(fields) > 0 {
		return fields[0], append(fields[1:], url), nil
	}

	// $BROWSER may hold a colon-separated list; the first entry is used.
	if env := os.Getenv("BROWSER"); env != "" {
		first, _, _ := strings.Cut(env, ":")
		if fields := strings.Fields(first); len(fields) > 0 {
			return fields[0], append(fields[1:], url), nil
		}
	}

	name, args := platformCommand(url)
	if name == "" {
		return "", nil, errors.New("no browser found; set browser in config or $BROWSER")
	}
	return name, args, nil
}
