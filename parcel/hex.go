package parcel

import (
	"encoding/hex"
	"regexp"
	"strings"
)

var hexSanitizer = regexp.MustCompile(`\s+`)

// FromHex returns a parcel for reading the given hex representation. Whitespace is ignored.
func FromHex(s string) (*Parcel, error) {
	sanitized := hexSanitizer.ReplaceAllString(s, "")
	data, err := hex.DecodeString(sanitized)
	if err != nil {
		return nil, err
	}
	return FromBytes(data), nil
}

// String returns the written data as upper case hex string.
func (p *Parcel) String() string {
	return strings.ToUpper(hex.EncodeToString(p.data))
}
