package slte

import (
	"fmt"

	"github.com/ftl/slte-ril/parcel"
	"github.com/ftl/slte-ril/ril"
)

// ActionKind tells the router what to do with an unsolicited response.
type ActionKind int

// All action kinds
const (
	PassThrough ActionKind = iota
	Suppress
	RemapTo
)

func (k ActionKind) String() string {
	switch k {
	case PassThrough:
		return "pass-through"
	case Suppress:
		return "suppress"
	case RemapTo:
		return "remap"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is the entry of an ActionTable. Target is only used with RemapTo.
type Action struct {
	Kind   ActionKind
	Target ril.UnsolicitedCode
}

// SuppressAction drops the unsolicited response.
func SuppressAction() Action {
	return Action{Kind: Suppress}
}

// RemapAction rewrites the unsolicited code to the given target.
func RemapAction(target ril.UnsolicitedCode) Action {
	return Action{Kind: RemapTo, Target: target}
}

// ActionTable maps unsolicited codes to actions. Codes without entry pass through.
type ActionTable map[ril.UnsolicitedCode]Action

// Lookup returns the action for the given code.
func (t ActionTable) Lookup(code ril.UnsolicitedCode) Action {
	action, ok := t[code]
	if !ok {
		return Action{Kind: PassThrough}
	}
	return action
}

// DefaultActionTable returns the actions required by the XMM7260 modem: the vendor specific
// registrant notifications and state reports are ignored.
func DefaultActionTable() ActionTable {
	return ActionTable{
		ril.UnsolDCRTInfoChanged:      SuppressAction(),
		ril.UnsolSTKCallControlResult: SuppressAction(),
		ril.UnsolWBAMRState:           SuppressAction(),
		ril.UnsolDeviceReadyNoti:      SuppressAction(),
		ril.UnsolSIMPBReady:           SuppressAction(),
	}
}

// Outcome is the terminal state of an unsolicited response in the router.
type Outcome int

// All outcomes
const (
	Suppressed Outcome = iota
	Dispatched
	Forwarded
)

func (o Outcome) String() string {
	switch o {
	case Suppressed:
		return "suppressed"
	case Dispatched:
		return "dispatched"
	case Forwarded:
		return "forwarded"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Event describes how the router handled one unsolicited response.
type Event struct {
	Outcome Outcome
	// Code is the code received from the modem.
	Code ril.UnsolicitedCode
	// Final is the code after remapping.
	Final ril.UnsolicitedCode
	Value any
	Err   error
}

// Remapped reports if the code of the event was remapped.
func (e Event) Remapped() bool {
	return e.Code != e.Final
}

// UnsolicitedDecoderFunc decodes the payload of an unsolicited response.
// The parcel is positioned right after the unsolicited code.
type UnsolicitedDecoderFunc func(*parcel.Parcel) (any, error)

// EventCallback is called with every dispatched event.
type EventCallback func(Event)

// Router intercepts unsolicited responses, suppresses or remaps them according to its action table,
// decodes the codes it has a decoder for, and forwards everything else unchanged.
type Router struct {
	actions  ActionTable
	decoders map[ril.UnsolicitedCode]UnsolicitedDecoderFunc
	forward  ril.UnsolicitedProcessor
	log      func(string)
	callback EventCallback
}

// NewRouter returns a router with the decoders for UNSOL_AM and UNSOL_STK_SEND_SMS_RESULT.
// The action table is copied and must not change afterwards.
func NewRouter(actions ActionTable, forward ril.UnsolicitedProcessor, log func(string)) *Router {
	table := make(ActionTable, len(actions))
	for code, action := range actions {
		table[code] = action
	}
	if log == nil {
		log = func(string) {}
	}
	return &Router{
		actions: table,
		decoders: map[ril.UnsolicitedCode]UnsolicitedDecoderFunc{
			ril.UnsolAM:               decodeUnsolicitedString,
			ril.UnsolSTKSendSMSResult: decodeUnsolicitedInts,
		},
		forward: forward,
		log:     log,
	}
}

// WithEventCallback sets the callback for dispatched events.
func (r *Router) WithEventCallback(callback EventCallback) *Router {
	r.callback = callback
	return r
}

// Process handles one unsolicited parcel that is positioned at the unsolicited code. Every parcel ends up
// in exactly one of the outcomes suppressed, dispatched, or forwarded.
func (r *Router) Process(p *parcel.Parcel, responseType ril.ResponseType) Event {
	position := p.Position()
	code := ril.UnsolicitedCode(p.ReadInt32())
	if p.Err() != nil {
		r.rewind(p, position)
		r.forward.ProcessUnsolicited(p, responseType)
		return Event{Outcome: Forwarded, Code: code, Final: code, Err: p.Err()}
	}

	event := Event{Code: code, Final: code}
	action := r.actions.Lookup(code)
	switch action.Kind {
	case Suppress:
		r.log(fmt.Sprintf("ignoring unsolicited response %d", code))
		event.Outcome = Suppressed
		return event
	case RemapTo:
		event.Final = action.Target
		r.log(fmt.Sprintf("remap unsolicited response from %d to %d", code, event.Final))
		r.rewind(p, position)
		p.WriteInt32(int32(event.Final))
	}

	decoder, ok := r.decoders[event.Final]
	if !ok {
		r.rewind(p, position)
		r.forward.ProcessUnsolicited(p, responseType)
		event.Outcome = Forwarded
		return event
	}

	r.rewind(p, position+4)
	event.Outcome = Dispatched
	event.Value, event.Err = decoder(p)
	if event.Err != nil {
		r.log(fmt.Sprintf("cannot decode %s: %v", event.Final, event.Err))
	}
	r.postProcess(event)

	return event
}

// rewind moves p back to a position inside the already read part of p.
func (r *Router) rewind(p *parcel.Parcel, position int) {
	err := p.SetPosition(position)
	if err != nil {
		r.log(fmt.Sprintf("cannot rewind unsolicited response: %v", err))
	}
}

func (r *Router) postProcess(event Event) {
	if event.Err == nil && event.Final == ril.UnsolAM {
		r.log(fmt.Sprintf("am=%s", event.Value))
	}
	if r.callback != nil {
		r.callback(event)
	}
}

func decodeUnsolicitedString(p *parcel.Parcel) (any, error) {
	result := p.ReadString()
	if p.Err() != nil {
		return nil, p.Err()
	}
	return result, nil
}

func decodeUnsolicitedInts(p *parcel.Parcel) (any, error) {
	result := p.ReadInt32Array()
	if p.Err() != nil {
		return nil, p.Err()
	}
	return result, nil
}
