package vibrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepareAttribute(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intensity")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
	return path
}

func TestNew_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, New("").path)
}

func TestIntensity(t *testing.T) {
	tt := []struct {
		desc     string
		content  string
		expected int
		invalid  bool
	}{
		{desc: "with prefix", content: "intensity: 7500\n", expected: 7500},
		{desc: "plain", content: "9000\n", expected: 9000},
		{desc: "garbage", content: "intensity: high\n", invalid: true},
		{desc: "empty", content: "", invalid: true},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			v := New(prepareAttribute(t, tc.content))

			actual, err := v.Intensity()

			if tc.invalid {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestNotSupported(t *testing.T) {
	v := New(filepath.Join(t.TempDir(), "missing"))

	assert.False(t, v.Supported())
	intensity, err := v.Intensity()
	assert.NoError(t, err)
	assert.Equal(t, 0, intensity)
	assert.ErrorIs(t, v.SetIntensity(5000), ErrNotSupported)
}

func TestSetIntensity(t *testing.T) {
	tt := []struct {
		value    int
		expected string
	}{
		{5000, "5000\n"},
		{-3, "0\n"},
		{12000, "10000\n"},
	}
	for _, tc := range tt {
		t.Run(tc.expected, func(t *testing.T) {
			path := prepareAttribute(t, "intensity: 9000\n")
			v := New(path)

			err := v.SetIntensity(tc.value)

			require.NoError(t, err)
			actual, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(actual))
		})
	}
}

func TestWarningThreshold(t *testing.T) {
	assert.False(t, AboveWarningThreshold(DefaultIntensity))
	assert.False(t, AboveWarningThreshold(WarningThreshold))
	assert.True(t, AboveWarningThreshold(WarningThreshold+1))
}
