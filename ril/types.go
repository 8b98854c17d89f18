package ril

import "fmt"

// CLIRMode controls the calling line identification restriction of an outgoing call, see TS 27.007 7.7.
type CLIRMode int32

// All CLIR modes
const (
	CLIRDefault CLIRMode = iota
	CLIRInvocation
	CLIRSuppression
)

// UUSInfo is the optional user-to-user signalling information of an outgoing call.
type UUSInfo struct {
	Type     int32
	DCS      int32
	UserData []byte
}

// SMSStatus is the status of a message stored on the ICC, see SmsManager.STATUS_ON_ICC_*
type SMSStatus int32

// All SMS status values on the ICC
const (
	SMSStatusFree   SMSStatus = 0
	SMSStatusRead   SMSStatus = 1
	SMSStatusUnread SMSStatus = 3
	SMSStatusSent   SMSStatus = 5
	SMSStatusUnsent SMSStatus = 7
)

// SMSResponse is the result of sending a SMS.
type SMSResponse struct {
	MessageRef int32
	AckPDU     string
	ErrorCode  int32
}

// CardMaxApps limits the number of applications kept in a CardStatus.
const CardMaxApps = 8

// CardState enum according to RIL_CardState
type CardState int32

// All card states
const (
	CardAbsent CardState = iota
	CardPresent
	CardError
	CardRestricted
)

func (s CardState) String() string {
	switch s {
	case CardAbsent:
		return "ABSENT"
	case CardPresent:
		return "PRESENT"
	case CardError:
		return "ERROR"
	case CardRestricted:
		return "RESTRICTED"
	default:
		return fmt.Sprintf("CardState(%d)", int32(s))
	}
}

// PinState enum according to RIL_PinState
type PinState int32

// All pin states
const (
	PinUnknown PinState = iota
	PinEnabledNotVerified
	PinEnabledVerified
	PinDisabled
	PinEnabledBlocked
	PinEnabledPermBlocked
)

// PinStateFromRIL converts the raw value, unknown values become PinUnknown.
func PinStateFromRIL(value int32) PinState {
	if value < int32(PinUnknown) || value > int32(PinEnabledPermBlocked) {
		return PinUnknown
	}
	return PinState(value)
}

// AppType enum according to RIL_AppType
type AppType int32

// All application types
const (
	AppTypeUnknown AppType = iota
	AppTypeSIM
	AppTypeUSIM
	AppTypeRUIM
	AppTypeCSIM
	AppTypeISIM
)

// AppTypeFromRIL converts the raw value, unknown values become AppTypeUnknown.
func AppTypeFromRIL(value int32) AppType {
	if value < int32(AppTypeUnknown) || value > int32(AppTypeISIM) {
		return AppTypeUnknown
	}
	return AppType(value)
}

// AppState enum according to RIL_AppState
type AppState int32

// All application states
const (
	AppStateUnknown AppState = iota
	AppStateDetected
	AppStatePin
	AppStatePuk
	AppStateSubscriptionPerso
	AppStateReady
)

// AppStateFromRIL converts the raw value, unknown values become AppStateUnknown.
func AppStateFromRIL(value int32) AppState {
	if value < int32(AppStateUnknown) || value > int32(AppStateReady) {
		return AppStateUnknown
	}
	return AppState(value)
}

// PersoSubstate enum according to RIL_PersoSubstate
type PersoSubstate int32

// The perso substates that matter here, the remaining values are passed through
const (
	PersoUnknown    PersoSubstate = 0
	PersoInProgress PersoSubstate = 1
	PersoReady      PersoSubstate = 2

	maxPersoSubstate = 24
)

// PersoSubstateFromRIL converts the raw value, unknown values become PersoUnknown.
func PersoSubstateFromRIL(value int32) PersoSubstate {
	if value < 0 || value > maxPersoSubstate {
		return PersoUnknown
	}
	return PersoSubstate(value)
}

// CardStatus is the result of RequestGetSIMStatus.
type CardStatus struct {
	CardState                   CardState
	UniversalPinState           PinState
	GSMUMTSSubscriptionAppIndex int32
	CDMASubscriptionAppIndex    int32
	IMSSubscriptionAppIndex     int32
	Applications                []CardApplicationStatus
}

// CardApplicationStatus describes one application on the card.
type CardApplicationStatus struct {
	AppType       AppType
	AppState      AppState
	PersoSubstate PersoSubstate
	AID           string
	AppLabel      string
	Pin1Replaced  int32
	Pin1          PinState
	Pin2          PinState
}

// SignalStrength is the result of RequestSignalStrength and UnsolSignalStrength.
type SignalStrength struct {
	GSMSignalStrength int32
	GSMBitErrorRate   int32
	CDMADbm           int32
	CDMAEcio          int32
	EVDODbm           int32
	EVDOEcio          int32
	EVDOSNR           int32
	LTESignalStrength int32
	LTERSRP           int32
	LTERSRQ           int32
	LTERSSNR          int32
	LTECQI            int32
	LTE               bool
}

// SignalStrengthValues is the number of integers in a signal strength parcel.
const SignalStrengthValues = 12

// NewSignalStrength builds a SignalStrength from the raw values in parcel order.
func NewSignalStrength(values [SignalStrengthValues]int32, lte bool) SignalStrength {
	return SignalStrength{
		GSMSignalStrength: values[0],
		GSMBitErrorRate:   values[1],
		CDMADbm:           values[2],
		CDMAEcio:          values[3],
		EVDODbm:           values[4],
		EVDOEcio:          values[5],
		EVDOSNR:           values[6],
		LTESignalStrength: values[7],
		LTERSRP:           values[8],
		LTERSRQ:           values[9],
		LTERSSNR:          values[10],
		LTECQI:            values[11],
		LTE:               lte,
	}
}

// OperatorInfo is one entry of the result of RequestQueryAvailableNetworks.
type OperatorInfo struct {
	AlphaLong  string
	AlphaShort string
	Numeric    string
	State      string
}

func (o OperatorInfo) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", o.AlphaLong, o.AlphaShort, o.Numeric, o.State)
}
