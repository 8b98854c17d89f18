package ril

import "fmt"

// RequestCode identifies a solicited request, see ril.h RIL_REQUEST_*
type RequestCode int32

// Request codes used by this module
const (
	RequestGetSIMStatus           RequestCode = 1
	RequestDial                   RequestCode = 10
	RequestHangup                 RequestCode = 12
	RequestSignalStrength         RequestCode = 19
	RequestOperator               RequestCode = 22
	RequestSendSMS                RequestCode = 25
	RequestSendSMSExpectMore      RequestCode = 26
	RequestAnswer                 RequestCode = 40
	RequestQueryAvailableNetworks RequestCode = 48
	RequestWriteSMSToSIM          RequestCode = 63

	// RequestDialEmergencyCall is specific to Samsung modems.
	RequestDialEmergencyCall RequestCode = 10001
)

var requestNames = map[RequestCode]string{
	RequestGetSIMStatus:           "GET_SIM_STATUS",
	RequestDial:                   "DIAL",
	RequestHangup:                 "HANGUP",
	RequestSignalStrength:         "SIGNAL_STRENGTH",
	RequestOperator:               "OPERATOR",
	RequestSendSMS:                "SEND_SMS",
	RequestSendSMSExpectMore:      "SEND_SMS_EXPECT_MORE",
	RequestAnswer:                 "ANSWER",
	RequestQueryAvailableNetworks: "QUERY_AVAILABLE_NETWORKS",
	RequestWriteSMSToSIM:          "WRITE_SMS_TO_SIM",
	RequestDialEmergencyCall:      "DIAL_EMERGENCY_CALL",
}

func (c RequestCode) String() string {
	name, ok := requestNames[c]
	if !ok {
		return fmt.Sprintf("<unknown request %d>", int32(c))
	}
	return name
}

// UnsolicitedCode identifies an unsolicited response, see ril.h RIL_UNSOL_*
type UnsolicitedCode int32

// Unsolicited codes known by this module
const (
	UnsolRadioStateChanged        UnsolicitedCode = 1000
	UnsolCallStateChanged         UnsolicitedCode = 1001
	UnsolVoiceNetworkStateChanged UnsolicitedCode = 1002
	UnsolNewSMS                   UnsolicitedCode = 1003
	UnsolNITZTimeReceived         UnsolicitedCode = 1008
	UnsolSignalStrength           UnsolicitedCode = 1009
	UnsolSIMStatusChanged         UnsolicitedCode = 1019
	UnsolDCRTInfoChanged          UnsolicitedCode = 1041

	// Samsung specific codes
	UnsolSTKSendSMSResult     UnsolicitedCode = 11002
	UnsolSTKCallControlResult UnsolicitedCode = 11003
	UnsolDeviceReadyNoti      UnsolicitedCode = 11008
	UnsolAM                   UnsolicitedCode = 11010
	UnsolSIMPBReady           UnsolicitedCode = 11021
	UnsolWBAMRState           UnsolicitedCode = 20017
)

var unsolicitedNames = map[UnsolicitedCode]string{
	UnsolRadioStateChanged:        "UNSOL_RESPONSE_RADIO_STATE_CHANGED",
	UnsolCallStateChanged:         "UNSOL_RESPONSE_CALL_STATE_CHANGED",
	UnsolVoiceNetworkStateChanged: "UNSOL_RESPONSE_VOICE_NETWORK_STATE_CHANGED",
	UnsolNewSMS:                   "UNSOL_RESPONSE_NEW_SMS",
	UnsolNITZTimeReceived:         "UNSOL_NITZ_TIME_RECEIVED",
	UnsolSignalStrength:           "UNSOL_SIGNAL_STRENGTH",
	UnsolSIMStatusChanged:         "UNSOL_RESPONSE_SIM_STATUS_CHANGED",
	UnsolDCRTInfoChanged:          "UNSOL_DC_RT_INFO_CHANGED",
	UnsolSTKSendSMSResult:         "UNSOL_STK_SEND_SMS_RESULT",
	UnsolSTKCallControlResult:     "UNSOL_STK_CALL_CONTROL_RESULT",
	UnsolDeviceReadyNoti:          "UNSOL_DEVICE_READY_NOTI",
	UnsolAM:                       "UNSOL_AM",
	UnsolSIMPBReady:               "UNSOL_SIM_PB_READY",
	UnsolWBAMRState:               "UNSOL_WB_AMR_STATE",
}

func (c UnsolicitedCode) String() string {
	name, ok := unsolicitedNames[c]
	if !ok {
		return fmt.Sprintf("<unknown unsolicited %d>", int32(c))
	}
	return name
}

// ResponseType enum of the first integer in every inbound parcel
type ResponseType int32

// All response types
const (
	ResponseSolicited              ResponseType = 0
	ResponseUnsolicited            ResponseType = 1
	ResponseSolicitedAckExpected   ResponseType = 3
	ResponseUnsolicitedAckExpected ResponseType = 4
)

// Unsolicited reports if the response type belongs to an unsolicited response.
func (t ResponseType) Unsolicited() bool {
	return t == ResponseUnsolicited || t == ResponseUnsolicitedAckExpected
}

// Error is a RIL_Errno value reported with a solicited response.
type Error int32

// Some well known RIL errors
const (
	Success              Error = 0
	RadioNotAvailable    Error = 1
	GenericFailure       Error = 2
	RequestNotSupported  Error = 6
	InvalidArguments     Error = 44
	NoSuchEntry          Error = 45
	InternalErr          Error = 38
	ModemErr             Error = 40
	InvalidResponseError Error = -1
)

func (e Error) Error() string {
	switch e {
	case RadioNotAvailable:
		return "RADIO_NOT_AVAILABLE"
	case GenericFailure:
		return "GENERIC_FAILURE"
	case RequestNotSupported:
		return "REQUEST_NOT_SUPPORTED"
	case InvalidArguments:
		return "INVALID_ARGUMENTS"
	case NoSuchEntry:
		return "NO_SUCH_ENTRY"
	case InternalErr:
		return "INTERNAL_ERR"
	case ModemErr:
		return "MODEM_ERR"
	case InvalidResponseError:
		return "INVALID_RESPONSE"
	default:
		return fmt.Sprintf("RIL error %d", int32(e))
	}
}
