package ril

import (
	"fmt"

	"github.com/ftl/slte-ril/parcel"
)

// Standard implements the Commands with the parcel layouts of the reference RIL.
type Standard struct {
	transport Transport
	tokens    TokenAllocator
}

// NewStandard returns a Standard that sends its requests through the given transport.
func NewStandard(transport Transport, tokens TokenAllocator) *Standard {
	return &Standard{
		transport: transport,
		tokens:    tokens,
	}
}

// Obtain creates a new request with the next serial.
func (s *Standard) Obtain(code RequestCode, result ResultFunc) *Request {
	return NewRequest(code, s.tokens.NextSerial(), result)
}

// Send logs and sends the given request.
func (s *Standard) Send(rr *Request) {
	s.transport.Log(fmt.Sprintf("%s> %s", rr.SerialString(), rr.Code))
	s.transport.Send(rr)
}

func (s *Standard) Dial(address string, clir CLIRMode, uus *UUSInfo, result ResultFunc) {
	rr := s.Obtain(RequestDial, result)
	rr.Parcel.WriteString(address)
	rr.Parcel.WriteInt32(int32(clir))
	WriteUUSInfo(rr.Parcel, uus)
	s.Send(rr)
}

// WriteUUSInfo writes the presence flag and, if present, the user-to-user signalling information.
func WriteUUSInfo(p *parcel.Parcel, uus *UUSInfo) {
	if uus == nil {
		p.WriteInt32(0)
		return
	}
	p.WriteInt32(1)
	p.WriteInt32(uus.Type)
	p.WriteInt32(uus.DCS)
	p.WriteByteArray(uus.UserData)
}

func (s *Standard) AcceptCall(result ResultFunc) {
	s.Send(s.Obtain(RequestAnswer, result))
}

func (s *Standard) Hangup(index int32, result ResultFunc) {
	rr := s.Obtain(RequestHangup, result)
	rr.Parcel.WriteInt32(1)
	rr.Parcel.WriteInt32(index)
	s.Send(rr)
}

func (s *Standard) SendSMS(smscPDU string, pdu string, result ResultFunc) {
	rr := s.Obtain(RequestSendSMS, result)
	WriteGSMSMS(rr.Parcel, smscPDU, pdu)
	s.Send(rr)
}

func (s *Standard) SendSMSExpectMore(smscPDU string, pdu string, result ResultFunc) {
	rr := s.Obtain(RequestSendSMSExpectMore, result)
	WriteGSMSMS(rr.Parcel, smscPDU, pdu)
	s.Send(rr)
}

// WriteGSMSMS writes the payload of a GSM SMS send request.
func WriteGSMSMS(p *parcel.Parcel, smscPDU string, pdu string) {
	p.WriteInt32(2)
	p.WriteString(smscPDU)
	p.WriteString(pdu)
}

func (s *Standard) WriteSMSToSIM(status SMSStatus, smsc string, pdu string, result ResultFunc) {
	rr := s.Obtain(RequestWriteSMSToSIM, result)
	rr.Parcel.WriteInt32(int32(status))
	rr.Parcel.WriteString(pdu)
	rr.Parcel.WriteString(smsc)
	s.Send(rr)
}

func (s *Standard) GetIccCardStatus(result ResultFunc) {
	s.Send(s.Obtain(RequestGetSIMStatus, result))
}

func (s *Standard) GetSignalStrength(result ResultFunc) {
	s.Send(s.Obtain(RequestSignalStrength, result))
}

func (s *Standard) GetOperator(result ResultFunc) {
	s.Send(s.Obtain(RequestOperator, result))
}

func (s *Standard) QueryAvailableNetworks(result ResultFunc) {
	s.Send(s.Obtain(RequestQueryAvailableNetworks, result))
}

// StandardDecoder decodes responses with the parcel layouts of the reference RIL.
var StandardDecoder ResponseDecoder = ResponseDecoderFunc(DecodeStandardResponse)

// DecodeStandardResponse decodes the payload of a solicited response according to the reference RIL.
func DecodeStandardResponse(code RequestCode, p *parcel.Parcel) (any, error) {
	var result any
	switch code {
	case RequestDial, RequestDialEmergencyCall, RequestAnswer, RequestHangup:
		return nil, nil
	case RequestGetSIMStatus:
		result = decodeStandardCardStatus(p)
	case RequestSignalStrength:
		result = NewSignalStrength(ReadSignalStrengthValues(p), false)
	case RequestOperator:
		result = p.ReadStringArray()
	case RequestQueryAvailableNetworks:
		var err error
		result, err = decodeStandardOperatorInfos(p)
		if err != nil {
			return nil, err
		}
	case RequestSendSMS, RequestSendSMSExpectMore:
		result = SMSResponse{
			MessageRef: p.ReadInt32(),
			AckPDU:     p.ReadString(),
			ErrorCode:  p.ReadInt32(),
		}
	case RequestWriteSMSToSIM:
		result = p.ReadInt32Array()
	default:
		return nil, fmt.Errorf("no response decoder for %s", code)
	}

	if p.Err() != nil {
		return nil, fmt.Errorf("invalid %s response: %w", code, p.Err())
	}
	return result, nil
}

// ReadCardStatusPreamble reads the fields preceding the applications and returns the application count.
func ReadCardStatusPreamble(p *parcel.Parcel, status *CardStatus) int {
	status.CardState = CardState(p.ReadInt32())
	status.UniversalPinState = PinStateFromRIL(p.ReadInt32())
	status.GSMUMTSSubscriptionAppIndex = p.ReadInt32()
	status.CDMASubscriptionAppIndex = p.ReadInt32()
	status.IMSSubscriptionAppIndex = p.ReadInt32()
	return int(p.ReadInt32())
}

// ReadCardApplication reads the positional fields of one RIL_AppStatus.
func ReadCardApplication(p *parcel.Parcel) CardApplicationStatus {
	var result CardApplicationStatus
	result.AppType = AppTypeFromRIL(p.ReadInt32())
	result.AppState = AppStateFromRIL(p.ReadInt32())
	result.PersoSubstate = PersoSubstateFromRIL(p.ReadInt32())
	result.AID = p.ReadString()
	result.AppLabel = p.ReadString()
	result.Pin1Replaced = p.ReadInt32()
	result.Pin1 = PinStateFromRIL(p.ReadInt32())
	result.Pin2 = PinStateFromRIL(p.ReadInt32())
	return result
}

func decodeStandardCardStatus(p *parcel.Parcel) CardStatus {
	var result CardStatus
	count := ReadCardStatusPreamble(p, &result)
	if count > CardMaxApps {
		count = CardMaxApps
	}
	for i := 0; i < count && p.Err() == nil; i++ {
		result.Applications = append(result.Applications, ReadCardApplication(p))
	}
	return result
}

// ReadSignalStrengthValues reads the raw signal strength integers in parcel order.
func ReadSignalStrengthValues(p *parcel.Parcel) [SignalStrengthValues]int32 {
	var result [SignalStrengthValues]int32
	for i := range result {
		result[i] = p.ReadInt32()
	}
	return result
}

const standardOperatorElements = 4

func decodeStandardOperatorInfos(p *parcel.Parcel) ([]OperatorInfo, error) {
	values := p.ReadStringArray()
	if p.Err() != nil {
		return nil, p.Err()
	}
	if len(values)%standardOperatorElements != 0 {
		return nil, fmt.Errorf("invalid %s response: got %d strings, expected multiple of %d", RequestQueryAvailableNetworks, len(values), standardOperatorElements)
	}
	result := make([]OperatorInfo, 0, len(values)/standardOperatorElements)
	for i := 0; i < len(values); i += standardOperatorElements {
		result = append(result, OperatorInfo{
			AlphaLong:  values[i],
			AlphaShort: values[i+1],
			Numeric:    values[i+2],
			State:      values[i+3],
		})
	}
	return result, nil
}
