/*
The package slte adapts the standard RIL call surface to the Samsung XMM7260 modem of the Galaxy Alpha (SM-G850F)
and related LTE devices. The modem deviates from the reference RIL in these points:

  - dial requests carry call details (call type, call domain, extras); emergency numbers use a separate request
  - answering a call carries the call index
  - writing a SMS to the SIM uses the TS 27.005 status values and a trailing reserved integer
  - SEND_SMS_EXPECT_MORE is not implemented, SEND_SMS is used instead
  - the card status contains five additional retry counters per application
  - the signal strength values need to be normalized
  - the list of available networks may contain more than four strings per operator
  - several vendor specific unsolicited responses are sent that must be ignored

Everything else is delegated to the base RIL.
*/
package slte
