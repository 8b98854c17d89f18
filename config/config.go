// Package config loads the settings of the RIL shim from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v7"
	"gopkg.in/yaml.v3"

	"github.com/ftl/slte-ril/ril"
	"github.com/ftl/slte-ril/slte"
	"github.com/ftl/slte-ril/vibrator"
)

// EnvPrefix is the prefix of all environment variables.
const EnvPrefix = "SLTERIL_"

// Config contains all settings.
type Config struct {
	Port     string `yaml:"port" env:"PORT"`
	BaudRate int    `yaml:"baud_rate" env:"BAUD_RATE"`

	// OperatorElements is the number of strings per operator in the response to QUERY_AVAILABLE_NETWORKS,
	// see ro.ril.telephony.mqanelements.
	OperatorElements int      `yaml:"operator_elements" env:"QAN_ELEMENTS"`
	EmergencyNumbers []string `yaml:"emergency_numbers" env:"EMERGENCY_NUMBERS" envSeparator:","`

	Unsolicited Unsolicited `yaml:"unsolicited"`
	Trace       Trace       `yaml:"trace" envPrefix:"TRACE_"`
	Vibrator    Vibrator    `yaml:"vibrator" envPrefix:"VIBRATOR_"`
}

// Unsolicited contains additional unsolicited codes to suppress or remap.
type Unsolicited struct {
	Suppress []int32         `yaml:"suppress,omitempty"`
	Remap    map[int32]int32 `yaml:"remap,omitempty"`
}

// Trace configures the trace file of the RIL communication. An empty filename disables tracing.
type Trace struct {
	Filename   string `yaml:"filename" env:"FILENAME"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS"`
	Compress   bool   `yaml:"compress" env:"COMPRESS"`
}

// Vibrator configures the sysfs attribute of the vibrator intensity.
type Vibrator struct {
	Path string `yaml:"path" env:"PATH"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		BaudRate:         115200,
		OperatorElements: slte.DefaultOperatorElements,
		EmergencyNumbers: append([]string{}, ril.DefaultEmergencyNumbers...),
		Trace: Trace{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Vibrator: Vibrator{
			Path: vibrator.DefaultPath,
		},
	}
}

// Load reads the configuration from the given YAML file and applies the environment on top.
// A missing file is not an error if the filename is empty.
func Load(filename string) (Config, error) {
	result := Default()

	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return Config{}, fmt.Errorf("cannot open configuration: %w", err)
		}
		defer f.Close()

		result, err = Read(f, result)
		if err != nil {
			return Config{}, fmt.Errorf("cannot read configuration %s: %w", filename, err)
		}
	}

	err := env.Parse(&result, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return Config{}, fmt.Errorf("cannot read environment: %w", err)
	}

	err = result.Validate()
	if err != nil {
		return Config{}, err
	}
	return result, nil
}

// Read decodes YAML from the given reader on top of the given base configuration.
func Read(r io.Reader, base Config) (Config, error) {
	result := base
	err := yaml.NewDecoder(r).Decode(&result)
	if errors.Is(err, io.EOF) {
		return base, nil
	}
	if err != nil {
		return Config{}, err
	}
	return result, nil
}

// Write encodes the configuration as YAML.
func (c Config) Write(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	err := encoder.Encode(c)
	if err != nil {
		return err
	}
	return encoder.Close()
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.OperatorElements < slte.DefaultOperatorElements {
		return fmt.Errorf("operator_elements must be at least %d, got %d", slte.DefaultOperatorElements, c.OperatorElements)
	}
	if c.BaudRate < 0 {
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	_, err := c.Adapter().ActionTable()
	return err
}

// Adapter returns the configuration of the slte adapter.
func (c Config) Adapter() slte.Config {
	result := slte.Config{
		OperatorElements: c.OperatorElements,
	}
	for _, code := range c.Unsolicited.Suppress {
		result.Suppress = append(result.Suppress, ril.UnsolicitedCode(code))
	}
	if len(c.Unsolicited.Remap) > 0 {
		result.Remap = make(map[ril.UnsolicitedCode]ril.UnsolicitedCode, len(c.Unsolicited.Remap))
		for from, to := range c.Unsolicited.Remap {
			result.Remap[ril.UnsolicitedCode(from)] = ril.UnsolicitedCode(to)
		}
	}
	return result
}

// EmergencyNumberFunc returns the emergency predicate for the configured numbers.
func (c Config) EmergencyNumberFunc() ril.EmergencyNumberFunc {
	return ril.EmergencyNumbers(c.EmergencyNumbers...)
}
