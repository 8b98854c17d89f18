package com

import (
	"fmt"
	"log"

	"github.com/ftl/slte-ril/parcel"
	"github.com/ftl/slte-ril/ril"
)

type unsolicitedDecoder func(c *COM, p *parcel.Parcel) (any, error)

// the unsolicited responses handled by the standard processing
var standardUnsolicited = map[ril.UnsolicitedCode]unsolicitedDecoder{
	ril.UnsolRadioStateChanged:        decodeUnsolicitedInt,
	ril.UnsolCallStateChanged:         decodeUnsolicitedVoid,
	ril.UnsolVoiceNetworkStateChanged: decodeUnsolicitedVoid,
	ril.UnsolSIMStatusChanged:         decodeUnsolicitedVoid,
	ril.UnsolNewSMS:                   decodeUnsolicitedString,
	ril.UnsolNITZTimeReceived:         decodeUnsolicitedString,
	ril.UnsolSignalStrength:           decodeUnsolicitedSignalStrength,
}

// ProcessUnsolicited is the standard handling of unsolicited responses. The parcel must be positioned at
// the unsolicited code. Known responses are decoded and handed to the registered handler, unknown responses
// are logged and dropped.
func (c *COM) ProcessUnsolicited(p *parcel.Parcel, responseType ril.ResponseType) {
	code := ril.UnsolicitedCode(p.ReadInt32())
	if p.Err() != nil {
		log.Printf("invalid unsolicited response: %v", p.Err())
		return
	}

	decode, ok := standardUnsolicited[code]
	if !ok {
		log.Printf("unsupported unsolicited response %s", code)
		return
	}

	value, err := decode(c, p)
	if err != nil {
		log.Printf("invalid %s: %v", code, err)
		return
	}
	c.Log(fmt.Sprintf("[UNSL]< %s", code))

	handler := c.unsolicitedHandler(code)
	if handler == nil {
		return
	}
	handler(code, value)
}

func decodeUnsolicitedVoid(*COM, *parcel.Parcel) (any, error) {
	return nil, nil
}

func decodeUnsolicitedInt(_ *COM, p *parcel.Parcel) (any, error) {
	result := p.ReadInt32()
	return result, p.Err()
}

func decodeUnsolicitedString(_ *COM, p *parcel.Parcel) (any, error) {
	result := p.ReadString()
	return result, p.Err()
}

// the signal strength uses the same layout as the response to RequestSignalStrength
func decodeUnsolicitedSignalStrength(c *COM, p *parcel.Parcel) (any, error) {
	return c.responseDecoder().DecodeResponse(ril.RequestSignalStrength, p)
}
