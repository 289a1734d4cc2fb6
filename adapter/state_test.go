package adapter

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	random := make([]byte, 512)
	_, err := rand.Read(random)
	require.NoError(t, err)

	testCases := []struct {
		name       string
		state      []byte
		compressed bool
	}{
		{"compressible", bytes.Repeat([]byte{0xAA, 0x00}, 1024), true},
		{"incompressible", random, false},
		{"empty", []byte{}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, stateBound(len(tc.state)))
			require.NoError(t, encodeState(buf, tc.state))

			assert.Equal(t, stateMagic, string(buf[:4]))
			assert.Equal(t, uint32(len(tc.state)), binary.LittleEndian.Uint32(buf[4:]))
			stored := binary.LittleEndian.Uint32(buf[8:])
			assert.Equal(t, tc.compressed, stored != 0)

			got, err := decodeState(buf)
			require.NoError(t, err)
			assert.Equal(t, tc.state, got)
		})
	}
}

// A larger host buffer than the state needs still decodes.
func TestStateInOversizedBuffer(t *testing.T) {
	state := bytes.Repeat([]byte("abc"), 10)
	buf := make([]byte, stateBound(100))
	require.NoError(t, encodeState(buf, state))

	got, err := decodeState(buf)
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestEncodeStateBufferTooSmall(t *testing.T) {
	err := encodeState(make([]byte, 8), []byte("state"))
	assert.ErrorIs(t, err, ErrBadState)
}

func TestDecodeStateRejects(t *testing.T) {
	valid := make([]byte, stateBound(64))
	require.NoError(t, encodeState(valid, bytes.Repeat([]byte{1}, 64)))

	truncated := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(truncated[8:], uint32(len(truncated)))

	oversized := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(oversized[4:], 1<<20)
	binary.LittleEndian.PutUint32(oversized[8:], 0)

	testCases := []struct {
		name string
		buf  []byte
	}{
		{"short", []byte("GRS")},
		{"bad magic", append([]byte("XXXX"), valid[4:]...)},
		{"stored length past end", truncated},
		{"raw length past end", oversized},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeState(tc.buf)
			assert.ErrorIs(t, err, ErrBadState)
		})
	}
}
