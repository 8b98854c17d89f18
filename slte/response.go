package slte

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ftl/slte-ril/parcel"
	"github.com/ftl/slte-ril/ril"
)

// DefaultOperatorElements is the number of strings per operator in the QUERY_AVAILABLE_NETWORKS response
// of the reference RIL. Many modems send five.
const DefaultOperatorElements = 4

// ErrInvalidOperatorList indicates a QUERY_AVAILABLE_NETWORKS response that cannot be split into operators.
var ErrInvalidOperatorList = errors.New("invalid operator list")

// retry counters per application: pin1, puk1, pin2, puk2, perso unblock
const appRetryCounters = 5

// DecodeResponse decodes the responses that differ from the reference RIL and delegates all others to the base decoder.
func (r *RIL) DecodeResponse(code ril.RequestCode, p *parcel.Parcel) (any, error) {
	switch code {
	case ril.RequestGetSIMStatus:
		return DecodeCardStatus(p)
	case ril.RequestSignalStrength:
		return DecodeSignalStrength(p)
	case ril.RequestQueryAvailableNetworks:
		infos, err := DecodeOperatorInfos(p, r.operatorElements)
		for _, info := range infos {
			r.transport.Log(fmt.Sprintf("add operator info: %s", info))
		}
		return infos, err
	default:
		return r.baseDecoder.DecodeResponse(code, p)
	}
}

// DecodeCardStatus decodes a card status with five trailing retry counters per application.
// Applications beyond ril.CardMaxApps are read, but dropped.
func DecodeCardStatus(p *parcel.Parcel) (ril.CardStatus, error) {
	var result ril.CardStatus
	count := ril.ReadCardStatusPreamble(p, &result)
	if p.Err() != nil {
		return ril.CardStatus{}, fmt.Errorf("invalid card status: %w", p.Err())
	}
	if count < 0 {
		return ril.CardStatus{}, fmt.Errorf("invalid card status: negative application count %d", count)
	}

	kept := min(count, ril.CardMaxApps)
	result.Applications = make([]ril.CardApplicationStatus, 0, kept)
	for i := 0; i < count; i++ {
		app := ril.ReadCardApplication(p)
		for j := 0; j < appRetryCounters; j++ {
			p.ReadInt32()
		}
		if p.Err() != nil {
			return ril.CardStatus{}, fmt.Errorf("invalid card application %d: %w", i, p.Err())
		}
		if i < kept {
			result.Applications = append(result.Applications, app)
		}
	}

	return result, nil
}

// DecodeSignalStrength decodes the twelve signal strength values and normalizes them: the GSM and LTE
// signal strength are masked to their low byte, the CDMA and EVDO dBm values are reduced modulo 256.
func DecodeSignalStrength(p *parcel.Parcel) (ril.SignalStrength, error) {
	values := ril.ReadSignalStrengthValues(p)
	if p.Err() != nil {
		return ril.SignalStrength{}, fmt.Errorf("invalid signal strength: %w", p.Err())
	}

	// gsm
	values[0] &= 0xff
	// cdma
	values[2] %= 256
	values[4] %= 256
	// lte
	values[7] &= 0xff

	return ril.NewSignalStrength(values, true), nil
}

// DecodeOperatorInfos decodes the flat string array of QUERY_AVAILABLE_NETWORKS with the given number of
// strings per operator. The modem does not send a usable short name, the long name is used instead.
func DecodeOperatorInfos(p *parcel.Parcel, elements int) ([]ril.OperatorInfo, error) {
	if elements < DefaultOperatorElements {
		return nil, fmt.Errorf("%w: %d elements per operator, at least %d required", ErrInvalidOperatorList, elements, DefaultOperatorElements)
	}
	values := p.ReadStringArray()
	if p.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOperatorList, p.Err())
	}
	if len(values)%elements != 0 {
		return nil, fmt.Errorf("%w: got %d strings, expected multiple of %d", ErrInvalidOperatorList, len(values), elements)
	}

	result := make([]ril.OperatorInfo, 0, len(values)/elements)
	for i := 0; i < len(values); i += elements {
		info := ril.OperatorInfo{
			AlphaLong:  values[i],
			AlphaShort: values[i],
			Numeric:    values[i+2],
			State:      strings.ToLower(values[i+3]),
		}
		result = append(result, info)
	}

	return result, nil
}
