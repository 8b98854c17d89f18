package slte

import (
	"github.com/ftl/slte-ril/ril"
)

// Call details sent with every dial request.
const (
	callTypeVoice       int32 = 0
	callDomainCS        int32 = 1
	callDomainEmergency int32 = 3
	callExtras                = ""

	writeSMSReserved int32 = 255
)

// Status values of TS 27.005 3.1, as expected by the modem when writing a SMS to the SIM.
const (
	modemSMSUnread int32 = 0
	modemSMSRead   int32 = 1
	modemSMSUnsent int32 = 2
	modemSMSSent   int32 = 3
)

// Dial routes emergency numbers to DIAL_EMERGENCY_CALL, all other numbers are dialed with DIAL.
func (r *RIL) Dial(address string, clir ril.CLIRMode, uus *ril.UUSInfo, result ril.ResultFunc) {
	if r.isEmergency(address) {
		r.dialEmergencyCall(address, clir, result)
		return
	}

	rr := r.obtain(ril.RequestDial, result)
	rr.Parcel.WriteString(address)
	rr.Parcel.WriteInt32(int32(clir))
	rr.Parcel.WriteInt32(callTypeVoice)
	rr.Parcel.WriteInt32(callDomainCS)
	rr.Parcel.WriteString(callExtras)
	ril.WriteUUSInfo(rr.Parcel, uus)

	r.send(rr)
}

func (r *RIL) dialEmergencyCall(address string, clir ril.CLIRMode, result ril.ResultFunc) {
	rr := r.obtain(ril.RequestDialEmergencyCall, result)
	rr.Parcel.WriteString(address)
	rr.Parcel.WriteInt32(int32(clir))
	rr.Parcel.WriteInt32(callTypeVoice)
	rr.Parcel.WriteInt32(callDomainEmergency)
	rr.Parcel.WriteString(callExtras)
	rr.Parcel.WriteInt32(0) // unknown, always 0

	r.send(rr)
}

// AcceptCall answers the call with index 0.
func (r *RIL) AcceptCall(result ril.ResultFunc) {
	r.AcceptCallIndex(0, result)
}

// AcceptCallIndex answers the call with the given index.
func (r *RIL) AcceptCallIndex(index int32, result ril.ResultFunc) {
	rr := r.obtain(ril.RequestAnswer, result)
	rr.Parcel.WriteInt32(1)
	rr.Parcel.WriteInt32(index)

	r.send(rr)
}

// TranslateSMSStatus maps the EF_SMS status bits to the status values of TS 27.005 3.1.
// Unknown values are treated as read.
func TranslateSMSStatus(status ril.SMSStatus) int32 {
	switch status & 0x7 {
	case ril.SMSStatusRead:
		return modemSMSRead
	case ril.SMSStatusUnread:
		return modemSMSUnread
	case ril.SMSStatusSent:
		return modemSMSSent
	case ril.SMSStatusUnsent:
		return modemSMSUnsent
	default:
		return modemSMSRead
	}
}

func (r *RIL) WriteSMSToSIM(status ril.SMSStatus, smsc string, pdu string, result ril.ResultFunc) {
	modemStatus := TranslateSMSStatus(status)

	rr := r.obtain(ril.RequestWriteSMSToSIM, result)
	rr.Parcel.WriteInt32(modemStatus)
	rr.Parcel.WriteString(pdu)
	rr.Parcel.WriteString(smsc)
	rr.Parcel.WriteInt32(writeSMSReserved)

	r.sendWithDetail(rr, modemStatus)
}

// SendSMSExpectMore sends a plain SEND_SMS, the modem does not handle SEND_SMS_EXPECT_MORE.
func (r *RIL) SendSMSExpectMore(smscPDU string, pdu string, result ril.ResultFunc) {
	rr := r.obtain(ril.RequestSendSMS, result)
	ril.WriteGSMSMS(rr.Parcel, smscPDU, pdu)

	r.send(rr)
}
