package browser

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve_ConfiguredCommandWins(t *testing.T) {
	t.Setenv("BROWSER", "lynx")
	o := NewOpener("firefox --new-tab", discard())

	name, args, err := o.resolve("https://github.com/o/r/pull/1")

	require.NoError(t, err)
	assert.Equal(t, "firefox", name)
	assert.Equal(t, []string{"--new-tab", "https://github.com/o/r/pull/1"}, args)
}

func TestResolve_BrowserEnv(t *testing.T) {
	t.Setenv("BROWSER", "w3m -N:lynx")
	o := NewOpener("", discard())

	name, args, err := o.resolve("u")

	require.NoError(t, err)
	assert.Equal(t, "w3m", name)
	assert.Equal(t, []string{"-N", "u"}, args)
}

func TestOpen_EmptyURL(t *testing.T) {
	assert.Error(t, NewOpener("true", discard()).Open(""))
}

func TestOpen_MissingCommand(t *testing.T) {
	err := NewOpener("pr-inbox-no-such-browser", discard()).Open("u")

	assert.Error(t, err)
}
