package chrome

import (
	"testing"

	"github.com/luispater/anySteps/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlag(t *testing.T) {
	name, value, ok := ParseFlag("--lang=en-US")
	require.True(t, ok)
	assert.Equal(t, "lang", name)
	assert.Equal(t, "en-US", value)

	name, value, ok = ParseFlag(" --mute-audio ")
	require.True(t, ok)
	assert.Equal(t, "mute-audio", name)
	assert.Equal(t, true, value)

	name, value, ok = ParseFlag("proxy-server=http://127.0.0.1:3128")
	require.True(t, ok)
	assert.Equal(t, "proxy-server", name)
	assert.Equal(t, "http://127.0.0.1:3128", value)

	_, _, ok = ParseFlag("")
	assert.False(t, ok)
	_, _, ok = ParseFlag("--")
	assert.False(t, ok)
}

func TestAllocatorOptions(t *testing.T) {
	base := &config.AppConfig{}
	full := &config.AppConfig{
		Headless: true,
		Browser: config.AppConfigBrowser{
			ChromePath:  "/usr/bin/chromium",
			UserDataDir: t.TempDir(),
			Args:        []string{"--lang=en-US", "", "--mute-audio"},
		},
	}
	// headless adds three options, the path, data dir and two args one each.
	assert.Len(t, AllocatorOptions(full), len(AllocatorOptions(base))+7)
}

func TestNewManagerRequiresConfig(t *testing.T) {
	_, err := NewManager(nil)
	assert.Error(t, err)
}

func TestManagerBeforeLaunch(t *testing.T) {
	m, err := NewManager(&config.AppConfig{Headless: true})
	require.NoError(t, err)
	defer m.Close()

	_, err = m.NewPage()
	assert.Error(t, err)
	assert.Error(t, m.ClearBrowserCookies())
}
