package serial

import (
	"errors"
	"io"

	"github.com/jacobsa/go-serial/serial"

	"github.com/ftl/slte-ril/com"
)

// DefaultBaudRate of the modem's IPC port
const DefaultBaudRate = 115200

var (
	ErrNoModemFound = errors.New("no modem device found")
)

// Open opens the modem on the given serial port and returns a COM instance to communicate with it.
// The caller is responsible for closing the returned io.Closer.
func Open(portName string, baudRate int) (*com.COM, io.Closer, error) {
	device, err := openSerial(portName, baudRate)
	if err != nil {
		return nil, nil, err
	}

	return com.New(device), device, nil
}

// OpenWithTrace opens the modem like Open and traces all communication to the given writer.
func OpenWithTrace(portName string, baudRate int, tracer io.Writer) (*com.COM, io.Closer, error) {
	device, err := openSerial(portName, baudRate)
	if err != nil {
		return nil, nil, err
	}

	return com.NewWithTrace(device, tracer), device, nil
}

func openSerial(portName string, baudRate int) (io.ReadWriteCloser, error) {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	portConfig := serial.OpenOptions{
		PortName:              portName,
		BaudRate:              uint(baudRate),
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		RTSCTSFlowControl:     true,
		MinimumReadSize:       4,
		InterCharacterTimeout: 100,
	}

	return serial.Open(portConfig)
}
