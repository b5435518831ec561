package fans

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindChannels(t *testing.T) {
	// GIVEN
	class := t.TempDir()
	channel := filepath.Join(class, "pwmchip0", "pwm0")
	require.NoError(t, os.MkdirAll(channel, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(class, "pwmchip0", "npwm"), []byte("2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(channel, "enable"), []byte("1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(channel, "period"), []byte("40000\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(class, "pwmchip1"), 0o755))

	// WHEN
	result := FindChannels(class)

	// THEN
	require.Len(t, result, 2)
	assert.Equal(t, Channel{
		Chip:      filepath.Join(class, "pwmchip0"),
		Path:      channel,
		Enable:    "1",
		Period:    "40000",
		DutyCycle: "-",
		Npwm:      "2",
	}, result[0])
	assert.Equal(t, filepath.Join(class, "pwmchip1"), result[1].Chip)
	assert.Empty(t, result[1].Path)
}

func TestFindChannels_NoChips(t *testing.T) {
	assert.Empty(t, FindChannels(t.TempDir()))
}
