package adapter

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/user-none/goretro/retro"
)

// Save states are an lz4 block behind a small header. The size reported
// to the host is the lz4 bound of the raw state, so it never changes
// while the same content is loaded.
const (
	stateMagic      = "GRS1"
	stateHeaderSize = 12 // magic, raw length, stored length
)

// ErrNoSaveStates is returned when the emulator cannot serialize.
var ErrNoSaveStates = errors.New("adapter: emulator does not support save states")

// ErrBadState is returned for data that is not a save state of this core.
var ErrBadState = errors.New("adapter: invalid save state")

// SerializeSize implements retro.Serializer.
func (c *Core) SerializeSize(ctx *retro.GetSerializeSizeContext) uintptr {
	if c.saveStater == nil {
		return 0
	}
	raw := c.sys.SerializeSize
	if raw <= 0 {
		state, err := c.saveStater.Serialize()
		if err != nil {
			c.log.Warn("failed to measure save state", "error", err)
			return 0
		}
		raw = len(state)
	}
	return uintptr(stateBound(raw))
}

// Serialize implements retro.Serializer.
func (c *Core) Serialize(buf []byte, ctx *retro.SerializeContext) error {
	if c.saveStater == nil {
		return ErrNoSaveStates
	}
	state, err := c.saveStater.Serialize()
	if err != nil {
		return err
	}
	return encodeState(buf, state)
}

// Unserialize implements retro.Serializer.
func (c *Core) Unserialize(buf []byte, ctx *retro.UnserializeContext) error {
	if c.saveStater == nil {
		return ErrNoSaveStates
	}
	state, err := decodeState(buf)
	if err != nil {
		return err
	}
	return c.saveStater.Deserialize(state)
}

func stateBound(raw int) int {
	return stateHeaderSize + max(lz4.CompressBlockBound(raw), raw)
}

// encodeState writes state into buf, compressed when that is smaller.
func encodeState(buf, state []byte) error {
	if len(buf) < stateBound(len(state)) {
		return fmt.Errorf("%w: buffer of %d bytes, need %d", ErrBadState, len(buf), stateBound(len(state)))
	}
	copy(buf, stateMagic)
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(state)))

	payload := buf[stateHeaderSize:]
	var c lz4.Compressor
	n, err := c.CompressBlock(state, payload)
	if err != nil || n == 0 || n >= len(state) {
		// Incompressible, stored with a zero length.
		n = copy(payload, state)
		binary.LittleEndian.PutUint32(buf[8:], 0)
	} else {
		binary.LittleEndian.PutUint32(buf[8:], uint32(n))
	}
	clear(payload[n:])
	return nil
}

func decodeState(buf []byte) ([]byte, error) {
	if len(buf) < stateHeaderSize || string(buf[:4]) != stateMagic {
		return nil, ErrBadState
	}
	raw := int(binary.LittleEndian.Uint32(buf[4:]))
	stored := int(binary.LittleEndian.Uint32(buf[8:]))
	payload := buf[stateHeaderSize:]

	if stored == 0 {
		if raw > len(payload) {
			return nil, ErrBadState
		}
		state := make([]byte, raw)
		copy(state, payload)
		return state, nil
	}

	if stored > len(payload) {
		return nil, ErrBadState
	}
	state := make([]byte, raw)
	n, err := lz4.UncompressBlock(payload[:stored], state)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadState, err)
	}
	if n != raw {
		return nil, fmt.Errorf("%w: %d bytes decompressed, header says %d", ErrBadState, n, raw)
	}
	return state, nil
}
