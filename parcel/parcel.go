/*
The package parcel implements the binary parcel format that is used on the socket between the Android
telephony framework and the radio interface layer daemon.

All values are aligned to 4 bytes and use little endian byte order:
  int32:       4 bytes
  string:      int32 length in UTF-16 code units (-1 for null), UTF-16LE code units, 16 bit NUL terminator, padding
  byte array:  int32 length (-1 for nil), bytes, padding
  string array: int32 count (-1 for nil), strings
*/
package parcel

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// ErrShortParcel indicates a read beyond the written length of a parcel.
var ErrShortParcel = errors.New("read beyond end of parcel")

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Parcel is a positionable buffer of parcel data. Reads and writes take place at the current position.
// The first failed read sets an error that sticks until the parcel is discarded; all following reads
// return zero values.
type Parcel struct {
	data     []byte
	position int
	err      error
}

// New returns an empty parcel ready for writing.
func New() *Parcel {
	return &Parcel{data: make([]byte, 0, 64)}
}

// FromBytes returns a parcel for reading the given data, positioned at the beginning.
func FromBytes(data []byte) *Parcel {
	return &Parcel{data: data}
}

// Bytes returns the written data.
func (p *Parcel) Bytes() []byte {
	return p.data
}

// Len returns the number of written bytes.
func (p *Parcel) Len() int {
	return len(p.data)
}

// Position returns the current offset of the cursor.
func (p *Parcel) Position() int {
	return p.position
}

// SetPosition relocates the cursor. The position must be within [0, Len].
func (p *Parcel) SetPosition(position int) error {
	if position < 0 || position > len(p.data) {
		return fmt.Errorf("invalid parcel position %d, length is %d", position, len(p.data))
	}
	p.position = position
	return nil
}

// Remaining returns the number of bytes between the cursor and the end of the data.
func (p *Parcel) Remaining() int {
	return len(p.data) - p.position
}

// Err returns the first read error that occurred, if any.
func (p *Parcel) Err() error {
	return p.err
}

func (p *Parcel) write(b []byte) {
	end := p.position + len(b)
	if end > len(p.data) {
		p.data = append(p.data, make([]byte, end-len(p.data))...)
	}
	copy(p.data[p.position:end], b)
	p.position = end
}

func (p *Parcel) read(n int) []byte {
	if p.err != nil {
		return nil
	}
	if n < 0 || p.position+n > len(p.data) {
		p.err = fmt.Errorf("need %d bytes at position %d of %d: %w", n, p.position, len(p.data), ErrShortParcel)
		return nil
	}
	result := p.data[p.position : p.position+n]
	p.position += n
	return result
}

func padded(n int) int {
	return (n + 3) &^ 3
}

// WriteInt32 appends a 32 bit integer.
func (p *Parcel) WriteInt32(value int32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(value))
	p.write(buf[:])
}

// ReadInt32 reads a 32 bit integer.
func (p *Parcel) ReadInt32() int32 {
	b := p.read(4)
	if b == nil {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

// WriteString appends a string in UTF-16LE representation.
func (p *Parcel) WriteString(s string) {
	encoded, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		// cannot happen for valid UTF-8, invalid sequences are replaced by the encoder
		encoded = nil
	}
	p.writeUTF16(encoded)
}

// WriteNullString appends the representation of a null string.
func (p *Parcel) WriteNullString() {
	p.WriteInt32(-1)
}

func (p *Parcel) writeUTF16(encoded []byte) {
	p.WriteInt32(int32(len(encoded) / 2))
	buf := make([]byte, padded(len(encoded)+2))
	copy(buf, encoded)
	p.write(buf)
}

// ReadString reads a string. A null string is returned as empty string.
func (p *Parcel) ReadString() string {
	s, _ := p.ReadNullableString()
	return s
}

// ReadNullableString reads a string and reports if it was null.
func (p *Parcel) ReadNullableString() (string, bool) {
	units := p.ReadInt32()
	if p.err != nil || units == -1 {
		return "", false
	}
	if units < -1 {
		p.err = fmt.Errorf("invalid string length %d: %w", units, ErrShortParcel)
		return "", false
	}
	size := int(units) * 2
	b := p.read(padded(size + 2))
	if b == nil {
		return "", false
	}
	decoded, err := utf16le.NewDecoder().Bytes(b[:size])
	if err != nil {
		p.err = fmt.Errorf("cannot decode UTF-16 string: %w", err)
		return "", false
	}
	return string(decoded), true
}

// WriteByteArray appends a length prefixed byte array. A nil slice is written as -1 length.
func (p *Parcel) WriteByteArray(b []byte) {
	if b == nil {
		p.WriteInt32(-1)
		return
	}
	p.WriteInt32(int32(len(b)))
	buf := make([]byte, padded(len(b)))
	copy(buf, b)
	p.write(buf)
}

// ReadByteArray reads a length prefixed byte array.
func (p *Parcel) ReadByteArray() []byte {
	length := p.ReadInt32()
	if p.err != nil || length == -1 {
		return nil
	}
	b := p.read(padded(int(length)))
	if b == nil {
		return nil
	}
	result := make([]byte, length)
	copy(result, b)
	return result
}

// WriteStringArray appends a count prefixed array of strings.
func (p *Parcel) WriteStringArray(values []string) {
	if values == nil {
		p.WriteInt32(-1)
		return
	}
	p.WriteInt32(int32(len(values)))
	for _, s := range values {
		p.WriteString(s)
	}
}

// ReadStringArray reads a count prefixed array of strings.
func (p *Parcel) ReadStringArray() []string {
	count := p.ReadInt32()
	if p.err != nil || count == -1 {
		return nil
	}
	if count < -1 || int(count)*4 > p.Remaining() {
		p.err = fmt.Errorf("invalid string array length %d: %w", count, ErrShortParcel)
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < int(count); i++ {
		result = append(result, p.ReadString())
	}
	if p.err != nil {
		return nil
	}
	return result
}

// WriteInt32Array appends a count prefixed array of 32 bit integers.
func (p *Parcel) WriteInt32Array(values []int32) {
	p.WriteInt32(int32(len(values)))
	for _, v := range values {
		p.WriteInt32(v)
	}
}

// ReadInt32Array reads a count prefixed array of 32 bit integers.
func (p *Parcel) ReadInt32Array() []int32 {
	count := p.ReadInt32()
	if p.err != nil {
		return nil
	}
	if count < 0 || int(count)*4 > p.Remaining() {
		p.err = fmt.Errorf("invalid int array length %d: %w", count, ErrShortParcel)
		return nil
	}
	result := make([]int32, count)
	for i := range result {
		result[i] = p.ReadInt32()
	}
	return result
}
