//go:build linux

package serial

import (
	"strings"

	"github.com/hedhyw/Go-Serial-Detector/pkg/v1/serialdet"
)

var modemDescriptions = []string{"xmm7260", "samsung_ipc", "modem"}

// FindModemPortName returns the path of the first serial device that looks like the modem.
func FindModemPortName() (string, error) {
	devices, err := serialdet.List()
	if err != nil {
		return "", err
	}

	for _, device := range devices {
		if isModem(device.Description()) {
			return device.Path(), nil
		}
	}

	return "", ErrNoModemFound
}

func isModem(description string) bool {
	description = strings.ToLower(description)
	for _, candidate := range modemDescriptions {
		if strings.Contains(description, candidate) {
			return true
		}
	}
	return false
}
