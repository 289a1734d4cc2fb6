package retro

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user-none/goretro/abi"
)

type defaulted struct {
	A uint32
	B uint32
}

func (d *defaulted) SetDefaults() { d.A = 7 }

// TestNilEnvironment verifies every marshaling primitive reports a null
// callback instead of crashing.
func TestNilEnvironment(t *testing.T) {
	var env Environment

	check := func(t *testing.T, err error) {
		t.Helper()
		var npe *NullPointerError
		require.ErrorAs(t, err, &npe)
		assert.Equal(t, "retro_environment_t", npe.Name)
		assert.ErrorIs(t, err, ErrNullPointer)
	}

	t.Run("Get", func(t *testing.T) {
		_, err := Get[bool](env, abi.EnvGetCanDupe)
		check(t, err)
	})
	t.Run("GetUnchecked", func(t *testing.T) {
		_, err := GetUnchecked[uint32](env, abi.EnvGetLanguage)
		check(t, err)
	})
	t.Run("GetMut", func(t *testing.T) {
		_, err := GetMut(env, abi.EnvGetLanguage, uint32(3))
		check(t, err)
	})
	t.Run("Set", func(t *testing.T) {
		check(t, Set(env, abi.EnvSetRotation, uint32(1)))
	})
	t.Run("SetPtr", func(t *testing.T) {
		check(t, SetPtr(env, abi.EnvShutdown, nil))
	})
	t.Run("GetPath", func(t *testing.T) {
		_, err := GetPath(env, abi.EnvGetSystemDirectory)
		check(t, err)
	})
	t.Run("GetOptionalPath", func(t *testing.T) {
		_, _, err := GetOptionalPath(env, abi.EnvGetUsername)
		check(t, err)
	})
}

// TestCallErrorNamesCommand verifies a refused command reports its name.
func TestCallErrorNamesCommand(t *testing.T) {
	env := newFakeHost().env()
	err := Set(env, abi.EnvSetRotation, uint32(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFailure))
	assert.Contains(t, err.Error(), "SET_ROTATION")
}

// TestGetAppliesDefaults verifies Get seeds the payload through
// Defaulter and GetUnchecked does not.
func TestGetAppliesDefaults(t *testing.T) {
	var seen uint32
	host := newFakeHost().on(abi.EnvGetLanguage, func(data unsafe.Pointer) bool {
		p := (*defaulted)(data)
		seen = p.A
		p.B = 9
		return true
	})

	v, err := Get[defaulted](host.env(), abi.EnvGetLanguage)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), seen)
	assert.Equal(t, defaulted{A: 7, B: 9}, v)

	v, err = GetUnchecked[defaulted](host.env(), abi.EnvGetLanguage)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), seen)
	assert.Equal(t, defaulted{B: 9}, v)
}

// TestGetPath verifies path answers are copied and validated.
func TestGetPath(t *testing.T) {
	dir := []byte("/home/user/system\x00")
	host := answer(newFakeHost(), abi.EnvGetSystemDirectory, &dir[0])
	answer(host, abi.EnvGetUsername, (*byte)(nil))

	got, err := GetPath(host.env(), abi.EnvGetSystemDirectory)
	require.NoError(t, err)
	assert.Equal(t, "/home/user/system", got)

	_, ok, err := GetOptionalPath(host.env(), abi.EnvGetUsername)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = GetPath(host.env(), abi.EnvGetUsername)
	assert.ErrorIs(t, err, ErrNullPointer)

	bad := []byte{0xff, 0xfe, 0}
	answer(host, abi.EnvGetSaveDirectory, &bad[0])
	_, err = GetPath(host.env(), abi.EnvGetSaveDirectory)
	assert.ErrorIs(t, err, ErrNonUTF8)
}

func TestCString(t *testing.T) {
	p, err := CString("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", goStringUnchecked(p))

	_, err = CString("a\x00b")
	assert.ErrorIs(t, err, ErrContainsNul)
}

// TestCopyToCBuffer verifies truncation always leaves a terminator.
func TestCopyToCBuffer(t *testing.T) {
	buf := make([]byte, 4)
	copyToCBuffer("disk.cue", &buf[0], uintptr(len(buf)))
	assert.Equal(t, []byte{'d', 'i', 's', 0}, buf)

	buf = make([]byte, 8)
	copyToCBuffer("ab", &buf[0], uintptr(len(buf)))
	assert.Equal(t, "ab", goStringUnchecked(&buf[0]))
}

func TestParseVariables(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want map[string]string
		err  bool
	}{
		{"empty", "", map[string]string{}, false},
		{"trailing separator", "a=1;b=2;", map[string]string{"a": "1", "b": "2"}, false},
		{"no trailing separator", "a=1;b=x=y", map[string]string{"a": "1", "b": "x=y"}, false},
		{"malformed pair", "a=1;broken;", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseVariables(tc.in)
			if tc.err {
				var kv *KeyValueError
				require.ErrorAs(t, err, &kv)
				assert.Equal(t, "broken", kv.Pair)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestCheckFlags verifies strict mode rejects unknown bits and lenient
// mode passes them through.
func TestCheckFlags(t *testing.T) {
	v, err := checkFlags(AudioVideoEnable(0b1001), audioVideoEnableAll, false)
	require.NoError(t, err)
	assert.Equal(t, AudioVideoEnable(0b1001), v)

	_, err = checkFlags(RetroDevice(0b1000_0000), retroDeviceAll, true)
	var ub *UnknownBitsError
	require.ErrorAs(t, err, &ub)
	assert.Equal(t, "10000000", ub.Unknown)
	assert.Len(t, ub.Known, 8)
	assert.ErrorIs(t, err, ErrUnknownBits)
}
