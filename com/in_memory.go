package com

import (
	"encoding/binary"
	"io"
	"sync"
	"time"
)

// NewInMemory returns a fake device that keeps all data in memory.
func NewInMemory() *InMemory {
	return &InMemory{
		readBuffer:  []byte{},
		writeBuffer: []byte{},
		readLock:    new(sync.RWMutex),
		writeLock:   new(sync.RWMutex),
		writeSignal: make(chan bool, 1),
		closed:      make(chan struct{}),
	}
}

// InMemory is a fake device for testing. The data prepared with PrepareRead and PrepareFrame is returned by
// Read, the data written with Write can be inspected with Written and WrittenFrames.
type InMemory struct {
	readBuffer     []byte
	writeBuffer    []byte
	readLock       *sync.RWMutex
	writeLock      *sync.RWMutex
	writeSignal    chan bool
	closed         chan struct{}
	closeWhenEmpty bool
}

func (rw *InMemory) Close() error {
	rw.readLock.Lock()
	defer rw.readLock.Unlock()
	rw.close()
	return nil
}

func (rw *InMemory) close() {
	select {
	case <-rw.closed:
	default:
		close(rw.closed)
	}
}

func (rw *InMemory) WaitUntilClosed() {
	<-rw.closed
}

func (rw *InMemory) Read(p []byte) (int, error) {
	for {
		rw.readLock.RLock()
		if len(rw.readBuffer) > 0 {
			rw.readLock.RUnlock()
			break
		}
		rw.readLock.RUnlock()
		select {
		case <-rw.closed:
			return 0, io.EOF
		case <-time.After(10 * time.Millisecond):
			continue
		}
	}

	rw.readLock.Lock()
	defer rw.readLock.Unlock()
	n := copy(p, rw.readBuffer)
	rw.readBuffer = rw.readBuffer[n:]
	if rw.closeWhenEmpty && len(rw.readBuffer) == 0 {
		rw.close()
	}
	return n, nil
}

// PrepareRead appends raw data to be read from the device.
func (rw *InMemory) PrepareRead(p []byte) {
	rw.readLock.Lock()
	defer rw.readLock.Unlock()

	rw.readBuffer = append(rw.readBuffer, p...)
}

// PrepareFrame appends the given parcel data with its length prefix to be read from the device.
func (rw *InMemory) PrepareFrame(data []byte) {
	header := make([]byte, frameHeaderSize)
	binary.BigEndian.PutUint32(header, uint32(len(data)))
	rw.PrepareRead(append(header, data...))
}

func (rw *InMemory) IsReadEmpty() bool {
	rw.readLock.RLock()
	defer rw.readLock.RUnlock()

	return len(rw.readBuffer) == 0
}

// CloseWhenEmpty closes the device as soon as all prepared data is read.
func (rw *InMemory) CloseWhenEmpty(value bool) {
	rw.readLock.Lock()
	defer rw.readLock.Unlock()

	rw.closeWhenEmpty = value
	if value && len(rw.readBuffer) == 0 {
		rw.close()
	}
}

func (rw *InMemory) Write(p []byte) (int, error) {
	rw.writeLock.Lock()
	defer rw.writeLock.Unlock()

	rw.writeBuffer = append(rw.writeBuffer, p...)
	select {
	case rw.writeSignal <- true:
	default:
	}
	return len(p), nil
}

func (rw *InMemory) Written() []byte {
	rw.writeLock.RLock()
	defer rw.writeLock.RUnlock()

	return append([]byte{}, rw.writeBuffer...)
}

// WrittenFrames splits the written data into frames and returns their parcel data.
func (rw *InMemory) WrittenFrames() [][]byte {
	data := rw.Written()
	var result [][]byte
	for len(data) >= frameHeaderSize {
		size := int(binary.BigEndian.Uint32(data))
		if len(data) < frameHeaderSize+size {
			break
		}
		result = append(result, data[frameHeaderSize:frameHeaderSize+size])
		data = data[frameHeaderSize+size:]
	}
	return result
}

func (rw *InMemory) ClearWrite() {
	rw.writeLock.Lock()
	defer rw.writeLock.Unlock()

	rw.writeBuffer = []byte{}
}

func (rw *InMemory) WaitUntilWritten() {
	<-rw.writeSignal
}
