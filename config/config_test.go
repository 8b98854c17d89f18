package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/slte-ril/ril"
	"github.com/ftl/slte-ril/slte"
)

func TestDefault(t *testing.T) {
	config := Default()

	assert.NoError(t, config.Validate())
	assert.Equal(t, 4, config.OperatorElements)
	assert.Equal(t, []string{"112", "911"}, config.EmergencyNumbers)
	assert.Equal(t, "/sys/class/timed_output/vibrator/intensity", config.Vibrator.Path)
}

func TestRead(t *testing.T) {
	tt := []struct {
		desc     string
		yaml     string
		expected func(*Config)
	}{
		{
			desc:     "empty",
			yaml:     "",
			expected: func(*Config) {},
		},
		{
			desc: "operator elements",
			yaml: "operator_elements: 5\n",
			expected: func(c *Config) {
				c.OperatorElements = 5
			},
		},
		{
			desc: "unsolicited",
			yaml: "unsolicited:\n  suppress: [1009]\n  remap:\n    11055: 11010\n",
			expected: func(c *Config) {
				c.Unsolicited.Suppress = []int32{1009}
				c.Unsolicited.Remap = map[int32]int32{11055: 11010}
			},
		},
		{
			desc: "port and trace",
			yaml: "port: /dev/ttyACM0\ntrace:\n  filename: /tmp/ril.trace\n",
			expected: func(c *Config) {
				c.Port = "/dev/ttyACM0"
				c.Trace.Filename = "/tmp/ril.trace"
			},
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			expected := Default()
			tc.expected(&expected)

			actual, err := Read(strings.NewReader(tc.yaml), Default())

			require.NoError(t, err)
			assert.Equal(t, expected, actual)
		})
	}
}

func TestRead_Invalid(t *testing.T) {
	_, err := Read(strings.NewReader("operator_elements: [1"), Default())

	assert.Error(t, err)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "slteril.yaml")
	err := os.WriteFile(filename, []byte("port: /dev/ttyACM0\noperator_elements: 5\n"), 0o644)
	require.NoError(t, err)
	t.Setenv("SLTERIL_PORT", "/dev/ttyUSB1")
	t.Setenv("SLTERIL_EMERGENCY_NUMBERS", "112,110")
	t.Setenv("SLTERIL_TRACE_FILENAME", "/tmp/trace.log")

	config, err := Load(filename)

	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB1", config.Port)
	assert.Equal(t, 5, config.OperatorElements)
	assert.Equal(t, []string{"112", "110"}, config.EmergencyNumbers)
	assert.Equal(t, "/tmp/trace.log", config.Trace.Filename)
	assert.Equal(t, 10, config.Trace.MaxSizeMB)
}

func TestLoad_InvalidOperatorElements(t *testing.T) {
	t.Setenv("SLTERIL_QAN_ELEMENTS", "3")

	_, err := Load("")

	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func TestValidate_SuppressedAndRemapped(t *testing.T) {
	config := Default()
	config.Unsolicited.Suppress = []int32{11055}
	config.Unsolicited.Remap = map[int32]int32{11055: 11010}

	assert.Error(t, config.Validate())
}

func TestValidate_RemapDefaultSuppressed(t *testing.T) {
	config := Default()
	config.Unsolicited.Remap = map[int32]int32{int32(ril.UnsolDeviceReadyNoti): int32(ril.UnsolAM)}

	assert.Error(t, config.Validate())
}

func TestAdapter(t *testing.T) {
	config := Default()
	config.OperatorElements = 5
	config.Unsolicited.Suppress = []int32{1009}
	config.Unsolicited.Remap = map[int32]int32{11055: 11010}

	actual := config.Adapter()

	assert.Equal(t, slte.Config{
		OperatorElements: 5,
		Suppress:         []ril.UnsolicitedCode{ril.UnsolSignalStrength},
		Remap:            map[ril.UnsolicitedCode]ril.UnsolicitedCode{11055: ril.UnsolAM},
	}, actual)
}

func TestEmergencyNumberFunc(t *testing.T) {
	config := Default()
	config.EmergencyNumbers = []string{"110"}

	isEmergency := config.EmergencyNumberFunc()

	assert.True(t, isEmergency("110"))
	assert.False(t, isEmergency("112"))
}

func TestWrite(t *testing.T) {
	buffer := &bytes.Buffer{}

	err := Default().Write(buffer)
	require.NoError(t, err)

	actual, err := Read(buffer, Config{})
	require.NoError(t, err)
	assert.Equal(t, Default(), actual)
}
