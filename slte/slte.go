package slte

import (
	"fmt"

	"github.com/ftl/slte-ril/parcel"
	"github.com/ftl/slte-ril/ril"
)

var (
	_ ril.Commands             = (*RIL)(nil)
	_ ril.ResponseDecoder      = (*RIL)(nil)
	_ ril.UnsolicitedProcessor = (*RIL)(nil)
)

// Config contains the device specific settings of the adapter.
type Config struct {
	// OperatorElements is the number of strings per operator in the QUERY_AVAILABLE_NETWORKS response.
	// Zero means DefaultOperatorElements.
	OperatorElements int
	// Suppress lists additional unsolicited codes to ignore.
	Suppress []ril.UnsolicitedCode
	// Remap maps unsolicited codes to the codes they should be handled as.
	Remap map[ril.UnsolicitedCode]ril.UnsolicitedCode
}

// RIL is the adapter for the XMM7260 modem. It implements ril.Commands, ril.ResponseDecoder, and
// ril.UnsolicitedProcessor. Requests and responses without device specific handling are delegated to
// the base RIL.
type RIL struct {
	transport   ril.Transport
	tokens      ril.TokenAllocator
	isEmergency ril.EmergencyNumberFunc

	base        ril.Commands
	baseDecoder ril.ResponseDecoder
	router      *Router

	operatorElements int
}

// New returns a new adapter on top of the given transport. The base RIL is a ril.Standard on the same transport.
func New(transport ril.Transport, tokens ril.TokenAllocator, isEmergency ril.EmergencyNumberFunc, config Config) (*RIL, error) {
	operatorElements := config.OperatorElements
	if operatorElements == 0 {
		operatorElements = DefaultOperatorElements
	}
	if operatorElements < DefaultOperatorElements {
		return nil, fmt.Errorf("invalid number of operator elements %d, at least %d required", operatorElements, DefaultOperatorElements)
	}
	if isEmergency == nil {
		isEmergency = ril.EmergencyNumbers(ril.DefaultEmergencyNumbers...)
	}

	actions, err := config.ActionTable()
	if err != nil {
		return nil, err
	}

	return &RIL{
		transport:        transport,
		tokens:           tokens,
		isEmergency:      isEmergency,
		base:             ril.NewStandard(transport, tokens),
		baseDecoder:      ril.StandardDecoder,
		router:           NewRouter(actions, transport, transport.Log),
		operatorElements: operatorElements,
	}, nil
}

// ActionTable returns the default action table extended by the configured suppressions and remaps.
// A code that is suppressed cannot be remapped.
func (c Config) ActionTable() (ActionTable, error) {
	result := DefaultActionTable()
	for _, code := range c.Suppress {
		result[code] = SuppressAction()
	}
	for from, to := range c.Remap {
		if existing, ok := result[from]; ok && existing.Kind == Suppress {
			return nil, fmt.Errorf("unsolicited response %d cannot be suppressed and remapped", from)
		}
		if from == to {
			continue
		}
		result[from] = RemapAction(to)
	}
	return result, nil
}

// WithBase replaces the base RIL and its response decoder.
func (r *RIL) WithBase(base ril.Commands, decoder ril.ResponseDecoder) *RIL {
	r.base = base
	r.baseDecoder = decoder
	return r
}

// WithEventCallback sets the callback for dispatched unsolicited responses.
func (r *RIL) WithEventCallback(callback EventCallback) *RIL {
	r.router.WithEventCallback(callback)
	return r
}

// ProcessUnsolicited routes an unsolicited parcel through the adapter's router.
func (r *RIL) ProcessUnsolicited(p *parcel.Parcel, responseType ril.ResponseType) {
	r.router.Process(p, responseType)
}

func (r *RIL) obtain(code ril.RequestCode, result ril.ResultFunc) *ril.Request {
	return ril.NewRequest(code, r.tokens.NextSerial(), result)
}

func (r *RIL) send(rr *ril.Request) {
	r.transport.Log(fmt.Sprintf("%s> %s", rr.SerialString(), rr.Code))
	r.transport.Send(rr)
}

func (r *RIL) sendWithDetail(rr *ril.Request, detail any) {
	r.transport.Log(fmt.Sprintf("%s> %s %v", rr.SerialString(), rr.Code, detail))
	r.transport.Send(rr)
}

/* delegated to the base RIL */

func (r *RIL) Hangup(index int32, result ril.ResultFunc) {
	r.base.Hangup(index, result)
}

func (r *RIL) SendSMS(smscPDU string, pdu string, result ril.ResultFunc) {
	r.base.SendSMS(smscPDU, pdu, result)
}

func (r *RIL) GetIccCardStatus(result ril.ResultFunc) {
	r.base.GetIccCardStatus(result)
}

func (r *RIL) GetSignalStrength(result ril.ResultFunc) {
	r.base.GetSignalStrength(result)
}

func (r *RIL) GetOperator(result ril.ResultFunc) {
	r.base.GetOperator(result)
}

func (r *RIL) QueryAvailableNetworks(result ril.ResultFunc) {
	r.base.QueryAvailableNetworks(result)
}
