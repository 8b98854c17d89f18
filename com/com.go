package com

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ftl/slte-ril/parcel"
	"github.com/ftl/slte-ril/ril"
)

const (
	frameHeaderSize     = 4
	maxFrameSize        = 8 * 1024
	requestQueueSize    = 16
	sendingQueueTimeout = 500 * time.Millisecond
)

var (
	ErrQueueTimeout = errors.New("RIL sending queue timeout")
	ErrClosed       = errors.New("RIL connection closed")
)

// UnsolicitedHandler receives the decoded value of a standard unsolicited response.
type UnsolicitedHandler func(code ril.UnsolicitedCode, value any)

// NewWithTrace creates a new COM instance that traces all communications to a second writer.
func NewWithTrace(device io.ReadWriter, tracer io.Writer) *COM {
	result := newCOM(tracer)
	result.start(device)
	return result
}

// New creates a new COM instance using the given io.ReadWriter to communicate with the RIL daemon or the modem.
func New(device io.ReadWriter) *COM {
	result := newCOM(nil)
	result.start(device)
	return result
}

func newCOM(tracer io.Writer) *COM {
	return &COM{
		requests: make(chan *ril.Request, requestQueueSize),
		closed:   make(chan struct{}),
		tracer:   tracer,
		pending:  make(map[int32]*ril.Request),
		decoder:  ril.StandardDecoder,
		handlers: make(map[ril.UnsolicitedCode]UnsolicitedHandler),
	}
}

// COM sends RIL requests as length prefixed parcels and correlates the responses by their serial.
// Inbound parcels are processed one after the other in a single goroutine.
type COM struct {
	requests chan *ril.Request
	closed   chan struct{}
	tracer   io.Writer
	serial   atomic.Int32

	// sendLock is held for reading while a request is queued and for writing while the queue is drained on close.
	sendLock sync.RWMutex

	pendingLock sync.Mutex
	pending     map[int32]*ril.Request

	hooksLock   sync.RWMutex
	decoder     ril.ResponseDecoder
	unsolicited ril.UnsolicitedProcessor
	handlers    map[ril.UnsolicitedCode]UnsolicitedHandler
}

func (c *COM) start(device io.ReadWriter) {
	frames := readLoop(device)

	go func() {
		c.trace("****\n* SESSION START\n****\n")
		defer c.trace("****\n* SESSION END\n****\n")
		defer c.shutdown()

		for {
			select {
			case frame, valid := <-frames:
				if !valid {
					return
				}
				c.tracef("rx:  %X\n--\n", frame)
				c.processFrame(frame)
			case rr := <-c.requests:
				c.write(device, rr)
			}
		}
	}()
}

func (c *COM) shutdown() {
	c.failPending(ErrClosed)
	close(c.closed)

	c.sendLock.Lock()
	defer c.sendLock.Unlock()
	for {
		select {
		case rr := <-c.requests:
			rr.Complete(nil, ErrClosed)
		default:
			return
		}
	}
}

func readLoop(r io.Reader) <-chan []byte {
	frames := make(chan []byte, 1)
	go func() {
		defer close(frames)
		header := make([]byte, frameHeaderSize)
		for {
			_, err := io.ReadFull(r, header)
			if err != nil {
				return
			}
			size := binary.BigEndian.Uint32(header)
			if size > maxFrameSize {
				log.Printf("RIL frame too large: %d bytes", size)
				return
			}
			frame := make([]byte, size)
			_, err = io.ReadFull(r, frame)
			if err != nil {
				return
			}
			frames <- frame
		}
	}()
	return frames
}

// Closed reports if the connection to the device is closed.
func (c *COM) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// WaitUntilClosed blocks until the connection to the device is closed.
func (c *COM) WaitUntilClosed() {
	<-c.closed
}

// NextSerial returns the next request serial.
func (c *COM) NextSerial() int32 {
	return c.serial.Add(1)
}

// SetResponseDecoder replaces the decoder for solicited responses.
func (c *COM) SetResponseDecoder(decoder ril.ResponseDecoder) {
	c.hooksLock.Lock()
	defer c.hooksLock.Unlock()
	c.decoder = decoder
}

// SetUnsolicitedProcessor sets the processor that receives every unsolicited response first.
// Without a processor, unsolicited responses are handled by ProcessUnsolicited.
func (c *COM) SetUnsolicitedProcessor(processor ril.UnsolicitedProcessor) {
	c.hooksLock.Lock()
	defer c.hooksLock.Unlock()
	c.unsolicited = processor
}

// Attach installs the given adapter as response decoder and unsolicited processor.
func (c *COM) Attach(adapter interface {
	ril.ResponseDecoder
	ril.UnsolicitedProcessor
}) {
	c.SetResponseDecoder(adapter)
	c.SetUnsolicitedProcessor(adapter)
}

// AddUnsolicitedHandler registers a handler for the given standard unsolicited response.
func (c *COM) AddUnsolicitedHandler(code ril.UnsolicitedCode, handler UnsolicitedHandler) {
	c.hooksLock.Lock()
	defer c.hooksLock.Unlock()
	c.handlers[code] = handler
}

func (c *COM) responseDecoder() ril.ResponseDecoder {
	c.hooksLock.RLock()
	defer c.hooksLock.RUnlock()
	return c.decoder
}

func (c *COM) unsolicitedProcessor() ril.UnsolicitedProcessor {
	c.hooksLock.RLock()
	defer c.hooksLock.RUnlock()
	if c.unsolicited == nil {
		return c
	}
	return c.unsolicited
}

func (c *COM) unsolicitedHandler(code ril.UnsolicitedCode) UnsolicitedHandler {
	c.hooksLock.RLock()
	defer c.hooksLock.RUnlock()
	return c.handlers[code]
}

// Send queues the given request. If the request cannot be sent, its result is completed with an error.
func (c *COM) Send(rr *ril.Request) {
	err := c.enqueue(rr)
	if err != nil {
		rr.Complete(nil, err)
	}
}

func (c *COM) enqueue(rr *ril.Request) error {
	c.sendLock.RLock()
	defer c.sendLock.RUnlock()
	if c.Closed() {
		return ErrClosed
	}
	select {
	case c.requests <- rr:
		return nil
	case <-c.closed:
		return ErrClosed
	case <-time.After(sendingQueueTimeout):
		return ErrQueueTimeout
	}
}

// Log writes a message of the RIL layer.
func (c *COM) Log(message string) {
	log.Printf("RILJ: %s", message)
	c.tracef("log: %s\n--\n", message)
}

func (c *COM) write(w io.Writer, rr *ril.Request) {
	c.pendingLock.Lock()
	c.pending[rr.Serial] = rr
	c.pendingLock.Unlock()

	data := rr.Parcel.Bytes()
	frame := make([]byte, frameHeaderSize, frameHeaderSize+len(data))
	binary.BigEndian.PutUint32(frame, uint32(len(data)))
	frame = append(frame, data...)

	c.tracef("tx:  %X\n--\n", frame)
	_, err := w.Write(frame)
	if err != nil {
		c.takePending(rr.Serial)
		rr.Complete(nil, fmt.Errorf("cannot send %s: %w", rr.Code, err))
	}
}

func (c *COM) takePending(serial int32) *ril.Request {
	c.pendingLock.Lock()
	defer c.pendingLock.Unlock()
	rr, ok := c.pending[serial]
	if !ok {
		return nil
	}
	delete(c.pending, serial)
	return rr
}

func (c *COM) failPending(err error) {
	c.pendingLock.Lock()
	pending := c.pending
	c.pending = make(map[int32]*ril.Request)
	c.pendingLock.Unlock()

	for _, rr := range pending {
		rr.Complete(nil, err)
	}
}

func (c *COM) processFrame(frame []byte) {
	p := parcel.FromBytes(frame)
	responseType := ril.ResponseType(p.ReadInt32())
	if p.Err() != nil {
		log.Printf("invalid RIL frame: %v", p.Err())
		return
	}

	switch {
	case responseType.Unsolicited():
		c.unsolicitedProcessor().ProcessUnsolicited(p, responseType)
	case responseType == ril.ResponseSolicited, responseType == ril.ResponseSolicitedAckExpected:
		c.processSolicited(p)
	default:
		log.Printf("unsupported RIL response type %d", responseType)
	}
}

func (c *COM) processSolicited(p *parcel.Parcel) {
	serial := p.ReadInt32()
	errno := ril.Error(p.ReadInt32())
	if p.Err() != nil {
		log.Printf("invalid solicited response: %v", p.Err())
		return
	}

	rr := c.takePending(serial)
	if rr == nil {
		log.Printf("unexpected solicited response for serial %d", serial)
		return
	}

	if errno != ril.Success {
		c.Log(fmt.Sprintf("%s< %s error: %v", rr.SerialString(), rr.Code, errno))
		rr.Complete(nil, errno)
		return
	}

	value, err := c.responseDecoder().DecodeResponse(rr.Code, p)
	if err != nil {
		c.Log(fmt.Sprintf("%s< %s exception: %v", rr.SerialString(), rr.Code, err))
	} else {
		c.Log(fmt.Sprintf("%s< %s", rr.SerialString(), rr.Code))
	}
	rr.Complete(value, err)
}

func (c *COM) trace(args ...any) {
	if c.tracer == nil {
		return
	}
	fmt.Fprint(c.tracer, args...)
}

func (c *COM) tracef(format string, args ...any) {
	if c.tracer == nil {
		return
	}
	fmt.Fprintf(c.tracer, format, args...)
}
