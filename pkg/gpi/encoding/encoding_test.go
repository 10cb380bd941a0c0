package encoding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoord32(t *testing.T) {
	t.Run("KnownValue", func(t *testing.T) {
		// 37.7749 degrees north, quantized to the fixed-point grid.
		data := MarshalCoord32(37.7749)
		degrees := UnmarshalCoord32(data)
		require.InDelta(t, 37.7749, degrees, 360.0/(1<<32))
	})

	t.Run("NegativeLongitude", func(t *testing.T) {
		data := MarshalCoord32(-122.4194)
		degrees := UnmarshalCoord32(data)
		require.InDelta(t, -122.4194, degrees, 360.0/(1<<32))
	})

	t.Run("FullRange", func(t *testing.T) {
		// The signed raw spans the whole 360 degrees: both hemispheres and
		// the date line stay representable.
		for _, degrees := range []float64{-180, -90, 0, 90, 179.9999} {
			got := UnmarshalCoord32(MarshalCoord32(degrees))
			require.InDelta(t, degrees, got, 360.0/(1<<32), "degrees %f", degrees)
		}
	})

	t.Run("RawRoundTrip", func(t *testing.T) {
		// Every representable raw value must survive a decode/encode cycle.
		raws := [][4]byte{
			{0x00, 0x00, 0x00, 0x00},
			{0x01, 0x00, 0x00, 0x00},
			{0xFF, 0xFF, 0xFF, 0x7F},
			{0x00, 0x00, 0x00, 0x80}, // most negative
			{0x39, 0x05, 0xED, 0x12},
			{0xC7, 0xFA, 0x12, 0xED}, // negative
		}
		for _, raw := range raws {
			degrees := UnmarshalCoord32(raw)
			assert.Equal(t, raw, MarshalCoord32(degrees), "raw % X", raw)
		}
	})
}

func TestCoord24(t *testing.T) {
	t.Run("RawRoundTrip", func(t *testing.T) {
		raws := [][3]byte{
			{0x00, 0x00, 0x00},
			{0x01, 0x00, 0x00},
			{0xFF, 0xFF, 0xFF}, // -1: smallest negative step
			{0x12, 0x34, 0x56},
			{0x00, 0x00, 0x80}, // most negative
			{0xC7, 0xFA, 0xED}, // negative, arbitrary
		}
		for _, raw := range raws {
			degrees := UnmarshalCoord24(raw)
			assert.Equal(t, raw, MarshalCoord24(degrees), "raw % X", raw)
		}
	})

	t.Run("Scale", func(t *testing.T) {
		// Raw 2^23-1 is just shy of 180 degrees; the sign bit flips to -180.
		degrees := UnmarshalCoord24([3]byte{0xFF, 0xFF, 0x7F})
		require.Less(t, degrees, 180.0)
		require.Greater(t, degrees, 179.9)

		require.Equal(t, -180.0, UnmarshalCoord24([3]byte{0x00, 0x00, 0x80}))
		require.Negative(t, UnmarshalCoord24([3]byte{0xFF, 0xFF, 0xFF}))
	})
}

func TestCoordPair32(t *testing.T) {
	pair := CoordPair{Latitude: 37.7749, Longitude: -122.4194}
	// Quantize first so the comparison can be exact.
	pair = UnmarshalCoordPair32(MarshalCoordPair32(pair))

	data := MarshalCoordPair32(pair)
	require.Equal(t, pair, UnmarshalCoordPair32(data))

	// Latitude occupies the first four bytes.
	var lat [4]byte
	copy(lat[:], data[0:4])
	require.Equal(t, pair.Latitude, UnmarshalCoord32(lat))
}

func TestTimestamp(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		want := time.Date(2011, 6, 15, 12, 30, 45, 0, time.UTC)
		got := UnmarshalTimestamp(MarshalTimestamp(want))
		require.True(t, want.Equal(got), "want %s, got %s", want, got)
	})

	t.Run("Epoch", func(t *testing.T) {
		require.Equal(t, [4]byte{0, 0, 0, 0}, MarshalTimestamp(GarminEpoch))
		require.True(t, GarminEpoch.Equal(UnmarshalTimestamp([4]byte{0, 0, 0, 0})))
	})

	t.Run("UnsetSentinel", func(t *testing.T) {
		// 0xFFFFFFFF decodes to the epoch and re-encodes as zero.
		decoded := UnmarshalTimestamp([4]byte{0xFF, 0xFF, 0xFF, 0xFF})
		require.True(t, GarminEpoch.Equal(decoded))
		require.Equal(t, [4]byte{0, 0, 0, 0}, MarshalTimestamp(decoded))
	})

	t.Run("EpochIsUnixOffset", func(t *testing.T) {
		require.Equal(t, int64(631065600), GarminEpoch.Unix())
	})
}

func TestFlags16(t *testing.T) {
	var f Flags16
	f.SetBit(0, true)
	f.SetBit(8, true)
	require.True(t, f.Bit(0))
	require.True(t, f.Bit(8))
	require.False(t, f.Bit(3))
	require.Equal(t, Flags16(0x0101), f)

	f.SetBit(0, false)
	require.False(t, f.Bit(0))

	// Bit 0 is the least significant bit of the first wire byte.
	data := MarshalFlags16(Flags16(0x0108))
	require.Equal(t, [2]byte{0x08, 0x01}, data)
	require.Equal(t, Flags16(0x0108), UnmarshalFlags16(data))
}

func TestVec16(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		data := MarshalVec16([]byte("Boston"))
		require.Equal(t, []byte{0x06, 0x00, 'B', 'o', 's', 't', 'o', 'n'}, data)

		v, n, err := UnmarshalVec16(data)
		require.NoError(t, err)
		require.Equal(t, len(data), n)
		require.Equal(t, []byte("Boston"), v)
	})

	t.Run("Empty", func(t *testing.T) {
		v, n, err := UnmarshalVec16([]byte{0x00, 0x00})
		require.NoError(t, err)
		require.Equal(t, 2, n)
		require.Empty(t, v)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, _, err := UnmarshalVec16([]byte{0x05, 0x00, 'a'})
		require.Error(t, err)
	})

	t.Run("ByteCount", func(t *testing.T) {
		require.Equal(t, 2, Vec16ByteCount(nil))
		require.Equal(t, 7, Vec16ByteCount([]byte("hello")))
	})
}

func TestVec32(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	data := MarshalVec32(payload)
	require.Equal(t, 8, len(data))
	require.Equal(t, Vec32ByteCount(payload), len(data))

	v, n, err := UnmarshalVec32(data)
	require.NoError(t, err)
	require.Equal(t, 8, n)
	require.Equal(t, payload, v)

	_, _, err = UnmarshalVec32([]byte{0x10, 0x00, 0x00, 0x00, 0x01})
	require.Error(t, err)
}
