// Package vibrator controls the vibration intensity through its sysfs attribute.
package vibrator

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultPath of the intensity attribute
const DefaultPath = "/sys/class/timed_output/vibrator/intensity"

// The intensity range
const (
	MinIntensity     = 0
	MaxIntensity     = 10000
	DefaultIntensity = 9000
	// WarningThreshold is the default value of the stock firmware
	WarningThreshold = 10000
)

const intensityPrefix = "intensity: "

var ErrNotSupported = errors.New("vibrator intensity is not supported")

// Vibrator reads and writes the intensity attribute at a given path.
type Vibrator struct {
	path string
}

// New returns a Vibrator for the given attribute path. An empty path means DefaultPath.
func New(path string) *Vibrator {
	if path == "" {
		path = DefaultPath
	}
	return &Vibrator{path: path}
}

// Supported reports if the intensity attribute exists.
func (v *Vibrator) Supported() bool {
	_, err := os.Stat(v.path)
	return err == nil
}

// Intensity reads the current intensity. It returns 0 if the attribute does not exist.
func (v *Vibrator) Intensity() (int, error) {
	if !v.Supported() {
		return 0, nil
	}
	line, err := readOneLine(v.path)
	if err != nil {
		return 0, err
	}
	line = strings.TrimSpace(strings.Replace(line, intensityPrefix, "", 1))
	result, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("invalid vibrator intensity %q: %w", line, err)
	}
	return result, nil
}

// SetIntensity writes the given intensity, clamped to [MinIntensity, MaxIntensity].
func (v *Vibrator) SetIntensity(intensity int) error {
	if !v.Supported() {
		return ErrNotSupported
	}
	return writeLine(v.path, strconv.Itoa(Clamp(intensity)))
}

// Clamp limits the given intensity to [MinIntensity, MaxIntensity].
func Clamp(intensity int) int {
	return max(MinIntensity, min(MaxIntensity, intensity))
}

// AboveWarningThreshold reports if the given intensity exceeds the warning threshold.
func AboveWarningThreshold(intensity int) bool {
	return intensity > WarningThreshold
}

func readOneLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", nil
}

func writeLine(path string, line string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, line)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
