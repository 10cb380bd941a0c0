package encoding

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalizedStrings(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		var ls LocalizedStrings
		ls.Set("en", []byte("Coffee"))
		ls.Set("de", []byte("Kaffee"))

		data := ls.Marshal()
		require.Equal(t, ls.ByteCount(), len(data))

		// Wire total counts everything after the prefix.
		total := binary.LittleEndian.Uint32(data[0:4])
		require.Equal(t, uint32(len(data)-4), total)
		require.Equal(t, uint32(2+2+6+2+2+6), total)

		var decoded LocalizedStrings
		n, err := decoded.Unmarshal(data)
		require.NoError(t, err)
		require.Equal(t, len(data), n)

		value, ok := decoded.Get("en")
		require.True(t, ok)
		require.Equal(t, []byte("Coffee"), value)
		value, ok = decoded.Get("de")
		require.True(t, ok)
		require.Equal(t, []byte("Kaffee"), value)
		_, ok = decoded.Get("fr")
		require.False(t, ok)
	})

	t.Run("InsertionOrderPreserved", func(t *testing.T) {
		var ls LocalizedStrings
		ls.Set("zh", []byte("a"))
		ls.Set("aa", []byte("b"))
		ls.Set("mm", []byte("c"))

		var decoded LocalizedStrings
		_, err := decoded.Unmarshal(ls.Marshal())
		require.NoError(t, err)

		entries := decoded.Entries()
		require.Len(t, entries, 3)
		require.Equal(t, [2]byte{'z', 'h'}, entries[0].Lang)
		require.Equal(t, [2]byte{'a', 'a'}, entries[1].Lang)
		require.Equal(t, [2]byte{'m', 'm'}, entries[2].Lang)
	})

	t.Run("SetReplaces", func(t *testing.T) {
		var ls LocalizedStrings
		ls.Set("en", []byte("old"))
		ls.Set("en", []byte("new"))
		require.Equal(t, 1, ls.Len())
		value, _ := ls.Get("en")
		require.Equal(t, []byte("new"), value)
	})

	t.Run("Empty", func(t *testing.T) {
		var ls LocalizedStrings
		data := ls.Marshal()
		require.Equal(t, []byte{0, 0, 0, 0}, data)

		var decoded LocalizedStrings
		n, err := decoded.Unmarshal(data)
		require.NoError(t, err)
		require.Equal(t, 4, n)
		require.Equal(t, 0, decoded.Len())
	})

	t.Run("Overshoot", func(t *testing.T) {
		// The single entry occupies 2+2+1 = 5 bytes but the total declares
		// only 4, so the entry runs past the total.
		data := []byte{
			0x04, 0x00, 0x00, 0x00, // total = 4
			'e', 'n',
			0x01, 0x00, 'x', // vec16 of 1 byte, entry consumes 5
		}
		var decoded LocalizedStrings
		_, err := decoded.Unmarshal(data)
		require.ErrorIs(t, err, ErrLocalizedOvershoot)
	})

	t.Run("TruncatedTotal", func(t *testing.T) {
		data := []byte{0x10, 0x00, 0x00, 0x00, 'e', 'n'}
		var decoded LocalizedStrings
		_, err := decoded.Unmarshal(data)
		require.Error(t, err)
	})
}

func TestLocalizedBlobs(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		var lb LocalizedBlobs
		lb.Set("en", []byte{0x52, 0x49, 0x46, 0x46})

		data := lb.Marshal()
		require.Equal(t, lb.ByteCount(), len(data))
		require.Equal(t, 4+2+4+4, len(data))

		var decoded LocalizedBlobs
		n, err := decoded.Unmarshal(data)
		require.NoError(t, err)
		require.Equal(t, len(data), n)

		value, ok := decoded.Get("en")
		require.True(t, ok)
		require.Equal(t, []byte{0x52, 0x49, 0x46, 0x46}, value)
	})

	t.Run("Overshoot", func(t *testing.T) {
		data := []byte{
			0x03, 0x00, 0x00, 0x00, // total = 3, shorter than any entry
			'e', 'n',
			0x01, 0x00, 0x00, 0x00, 0xAA,
		}
		var decoded LocalizedBlobs
		_, err := decoded.Unmarshal(data)
		require.ErrorIs(t, err, ErrLocalizedOvershoot)
	})
}
