package com

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemory_Read(t *testing.T) {
	tt := []struct {
		desc     string
		in       string
		bufLen   int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello", 3, "hel"},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			rw := NewInMemory()
			rw.PrepareRead([]byte(tc.in))
			buf := make([]byte, tc.bufLen)

			n, err := rw.Read(buf)

			assert.NoError(t, err)
			assert.Equal(t, len(tc.expected), n)
			assert.Equal(t, tc.expected, string(buf[0:n]))
		})
	}
}

func TestInMemory_ReadClose(t *testing.T) {
	rw := NewInMemory()

	go func() {
		time.Sleep(100 * time.Nanosecond)
		rw.Close()
	}()

	buf := make([]byte, 10)
	n, err := rw.Read(buf)

	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, n)
}

func TestInMemory_PrepareFrame(t *testing.T) {
	rw := NewInMemory()
	rw.PrepareFrame([]byte{1, 2, 3, 4})
	buf := make([]byte, 16)

	n, err := rw.Read(buf)

	assert.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 4, 1, 2, 3, 4}, buf[:n])
}

func TestInMemory_WrittenFrames(t *testing.T) {
	rw := NewInMemory()

	rw.Write([]byte{0, 0, 0, 4, 1, 2, 3, 4, 0, 0, 0, 0})
	rw.Write([]byte{0, 0, 0, 8, 1})

	assert.Equal(t, [][]byte{{1, 2, 3, 4}, {}}, rw.WrittenFrames())

	rw.ClearWrite()
	assert.Empty(t, rw.WrittenFrames())
}
