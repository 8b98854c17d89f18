package com

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/slte-ril/parcel"
	"github.com/ftl/slte-ril/ril"
)

func solicitedResponse(serial int32, errno ril.Error, payload func(*parcel.Parcel)) []byte {
	p := parcel.New()
	p.WriteInt32(int32(ril.ResponseSolicited))
	p.WriteInt32(serial)
	p.WriteInt32(int32(errno))
	if payload != nil {
		payload(p)
	}
	return p.Bytes()
}

func unsolicitedResponse(code ril.UnsolicitedCode, payload func(*parcel.Parcel)) []byte {
	p := parcel.New()
	p.WriteInt32(int32(ril.ResponseUnsolicited))
	p.WriteInt32(int32(code))
	if payload != nil {
		payload(p)
	}
	return p.Bytes()
}

func TestReadLoop_CloseDevice(t *testing.T) {
	device := NewInMemory()
	frames := readLoop(device)
	device.Close()

	_, valid := <-frames

	assert.False(t, valid)
}

func TestReadLoop_ReadFrames(t *testing.T) {
	device := NewInMemory()
	frames := readLoop(device)

	go func() {
		time.Sleep(10 * time.Millisecond)
		device.PrepareRead([]byte{0, 0, 0, 4, 1, 2})
		time.Sleep(10 * time.Millisecond)
		device.PrepareRead([]byte{3, 4, 0, 0, 0, 0})
	}()

	first, valid := <-frames
	assert.True(t, valid)
	assert.Equal(t, []byte{1, 2, 3, 4}, first)

	second, valid := <-frames
	assert.True(t, valid)
	assert.Equal(t, []byte{}, second)

	device.Close()
	_, valid = <-frames
	assert.False(t, valid)
}

func TestReadLoop_FrameTooLarge(t *testing.T) {
	device := NewInMemory()
	device.PrepareRead([]byte{0xff, 0, 0, 0})
	frames := readLoop(device)

	_, valid := <-frames

	assert.False(t, valid)
}

func TestCOM_CloseDevice(t *testing.T) {
	device := NewInMemory()
	com := New(device)

	device.Close()
	com.WaitUntilClosed()

	assert.True(t, com.Closed())
}

func TestCOM_NextSerial(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)

	assert.Equal(t, int32(1), com.NextSerial())
	assert.Equal(t, int32(2), com.NextSerial())
}

func TestCOM_SimpleRequest(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	standard := ril.NewStandard(com, com)
	go func() {
		device.WaitUntilWritten()
		device.PrepareFrame(solicitedResponse(1, ril.Success, nil))
	}()

	value, err := ril.Await(context.Background(), func(result ril.ResultFunc) {
		standard.AcceptCall(result)
	})

	assert.NoError(t, err)
	assert.Nil(t, value)
	frames := device.WrittenFrames()
	require.Len(t, frames, 1)
	assert.Equal(t, "28000000"+"01000000", parcel.FromBytes(frames[0]).String())
}

func TestCOM_RequestWithData(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	standard := ril.NewStandard(com, com)
	go func() {
		device.WaitUntilWritten()
		device.PrepareFrame(solicitedResponse(1, ril.Success, func(p *parcel.Parcel) {
			p.WriteStringArray([]string{"Telekom.de", "TDG", "26201"})
		}))
	}()

	value, err := ril.Await(context.Background(), standard.GetOperator)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Telekom.de", "TDG", "26201"}, value)
}

func TestCOM_RequestWithError(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	standard := ril.NewStandard(com, com)
	go func() {
		device.WaitUntilWritten()
		device.PrepareFrame(solicitedResponse(1, ril.GenericFailure, nil))
	}()

	value, err := ril.Await(context.Background(), standard.GetIccCardStatus)

	assert.ErrorIs(t, err, ril.GenericFailure)
	assert.Nil(t, value)
}

func TestCOM_ResponseDecoder(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	com.SetResponseDecoder(ril.ResponseDecoderFunc(func(code ril.RequestCode, p *parcel.Parcel) (any, error) {
		return code.String() + ":" + p.ReadString(), p.Err()
	}))
	standard := ril.NewStandard(com, com)
	go func() {
		device.WaitUntilWritten()
		device.PrepareFrame(solicitedResponse(1, ril.Success, func(p *parcel.Parcel) {
			p.WriteString("decoded")
		}))
	}()

	value, err := ril.Await(context.Background(), standard.GetSignalStrength)

	assert.NoError(t, err)
	assert.Equal(t, "SIGNAL_STRENGTH:decoded", value)
}

func TestCOM_UnexpectedSerial(t *testing.T) {
	device := NewInMemory()
	com := New(device)
	standard := ril.NewStandard(com, com)
	go func() {
		device.WaitUntilWritten()
		device.PrepareFrame(solicitedResponse(42, ril.Success, nil))
		device.CloseWhenEmpty(true)
	}()

	_, err := ril.Await(context.Background(), standard.GetOperator)

	assert.ErrorIs(t, err, ErrClosed)
}

func TestCOM_CancelRequest(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	ctx, cancel := context.WithCancel(context.Background())
	com := New(device)
	standard := ril.NewStandard(com, com)
	go func() {
		device.WaitUntilWritten()
		cancel()
	}()

	value, err := ril.Await(ctx, standard.GetOperator)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, value)
}

func TestCOM_SendWhenClosed(t *testing.T) {
	device := NewInMemory()
	com := New(device)
	device.Close()
	com.WaitUntilClosed()
	standard := ril.NewStandard(com, com)

	_, err := ril.Await(context.Background(), standard.GetOperator)

	assert.ErrorIs(t, err, ErrClosed)
}

func TestCOM_CloseWhileSending(t *testing.T) {
	for i := 0; i < 50; i++ {
		device := NewInMemory()
		com := New(device)
		var completed atomic.Int32
		var wg sync.WaitGroup
		for j := 0; j < requestQueueSize; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				com.Send(ril.NewRequest(ril.RequestOperator, com.NextSerial(), func(response ril.Response) {
					assert.Error(t, response.Err)
					completed.Add(1)
				}))
			}()
		}
		device.Close()
		wg.Wait()
		com.WaitUntilClosed()

		assert.Eventually(t, func() bool {
			return completed.Load() == requestQueueSize
		}, time.Second, time.Millisecond, "round %d: %d of %d completed", i, completed.Load(), requestQueueSize)
	}
}

type recordingProcessor struct {
	codes chan ril.UnsolicitedCode
}

func (r *recordingProcessor) ProcessUnsolicited(p *parcel.Parcel, _ ril.ResponseType) {
	r.codes <- ril.UnsolicitedCode(p.ReadInt32())
}

func TestCOM_UnsolicitedProcessor(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	processor := &recordingProcessor{codes: make(chan ril.UnsolicitedCode, 1)}
	com.SetUnsolicitedProcessor(processor)

	device.PrepareFrame(unsolicitedResponse(ril.UnsolAM, nil))

	select {
	case code := <-processor.codes:
		assert.Equal(t, ril.UnsolAM, code)
	case <-time.After(time.Second):
		assert.Fail(t, "no unsolicited response processed")
	}
}

func TestCOM_StandardUnsolicited(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	values := make(chan any, 2)
	com.AddUnsolicitedHandler(ril.UnsolNITZTimeReceived, func(_ ril.UnsolicitedCode, value any) {
		values <- value
	})
	com.AddUnsolicitedHandler(ril.UnsolSignalStrength, func(_ ril.UnsolicitedCode, value any) {
		values <- value
	})
	com.SetResponseDecoder(ril.ResponseDecoderFunc(func(code ril.RequestCode, p *parcel.Parcel) (any, error) {
		return code, nil
	}))

	device.PrepareFrame(unsolicitedResponse(ril.UnsolicitedCode(4711), nil))
	device.PrepareFrame(unsolicitedResponse(ril.UnsolNITZTimeReceived, func(p *parcel.Parcel) {
		p.WriteString("17/10/19,06:28:00+08,00")
	}))
	device.PrepareFrame(unsolicitedResponse(ril.UnsolSignalStrength, nil))

	for _, expected := range []any{"17/10/19,06:28:00+08,00", ril.RequestSignalStrength} {
		select {
		case value := <-values:
			assert.Equal(t, expected, value)
		case <-time.After(time.Second):
			assert.Fail(t, "no unsolicited response handled")
		}
	}
}
