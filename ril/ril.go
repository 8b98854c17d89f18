/*
The package ril contains the vocabulary shared between the generic radio interface layer transport and the
device specific adapters: request and unsolicited codes, requests and responses, the structured results,
and the interfaces that connect the layers.

The wire format follows the Android RIL parcel protocol (hardware/ril/include/telephony/ril.h).
*/
package ril

import (
	"fmt"

	"github.com/ftl/slte-ril/parcel"
)

// ResultFunc is called exactly once with the outcome of a request.
type ResultFunc func(Response)

// Response is the outcome of a solicited request.
type Response struct {
	Serial int32
	Code   RequestCode
	Value  any
	Err    error
}

// Request is a solicited request. The parcel starts with the request code and the serial, the payload follows.
type Request struct {
	Code   RequestCode
	Serial int32
	Parcel *parcel.Parcel
	Result ResultFunc
}

// NewRequest obtains a new request and writes the request header into its parcel.
func NewRequest(code RequestCode, serial int32, result ResultFunc) *Request {
	p := parcel.New()
	p.WriteInt32(int32(code))
	p.WriteInt32(serial)
	return &Request{
		Code:   code,
		Serial: serial,
		Parcel: p,
		Result: result,
	}
}

// SerialString returns the serial in the format used in log messages.
func (r *Request) SerialString() string {
	return fmt.Sprintf("[%04d]", r.Serial%10000)
}

// Payload returns the bytes following the request header.
func (r *Request) Payload() []byte {
	return r.Parcel.Bytes()[8:]
}

// Complete hands the response to the result function, if there is one.
func (r *Request) Complete(value any, err error) {
	if r.Result == nil {
		return
	}
	r.Result(Response{
		Serial: r.Serial,
		Code:   r.Code,
		Value:  value,
		Err:    err,
	})
}

// Transport sends requests to the radio and provides the standard handling of unsolicited responses.
type Transport interface {
	Send(*Request)
	Log(string)
	ProcessUnsolicited(p *parcel.Parcel, responseType ResponseType)
}

// TokenAllocator hands out the serials that correlate responses with requests.
type TokenAllocator interface {
	NextSerial() int32
}

// TokenAllocatorFunc adapts a function to the TokenAllocator interface.
type TokenAllocatorFunc func() int32

func (f TokenAllocatorFunc) NextSerial() int32 {
	return f()
}

// ResponseDecoder decodes the payload of a solicited response for the given request code.
type ResponseDecoder interface {
	DecodeResponse(code RequestCode, p *parcel.Parcel) (any, error)
}

// ResponseDecoderFunc adapts a function to the ResponseDecoder interface.
type ResponseDecoderFunc func(RequestCode, *parcel.Parcel) (any, error)

func (f ResponseDecoderFunc) DecodeResponse(code RequestCode, p *parcel.Parcel) (any, error) {
	return f(code, p)
}

// UnsolicitedProcessor handles an unsolicited parcel. The parcel is positioned at the unsolicited code.
type UnsolicitedProcessor interface {
	ProcessUnsolicited(p *parcel.Parcel, responseType ResponseType)
}

// Commands is the call surface of a RIL.
type Commands interface {
	Dial(address string, clir CLIRMode, uus *UUSInfo, result ResultFunc)
	AcceptCall(result ResultFunc)
	Hangup(index int32, result ResultFunc)
	SendSMS(smscPDU string, pdu string, result ResultFunc)
	SendSMSExpectMore(smscPDU string, pdu string, result ResultFunc)
	WriteSMSToSIM(status SMSStatus, smsc string, pdu string, result ResultFunc)
	GetIccCardStatus(result ResultFunc)
	GetSignalStrength(result ResultFunc)
	GetOperator(result ResultFunc)
	QueryAvailableNetworks(result ResultFunc)
}
