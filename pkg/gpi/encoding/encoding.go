package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/GravisZro/gpi-kit/pkg/consts"
)

// ErrLocalizedOvershoot is returned when a localized map consumes more bytes
// than its length prefix declared.
var ErrLocalizedOvershoot = errors.New("localized map consumed more bytes than declared")

// GarminEpoch is the zero point of GPI timestamps: 1989-12-31 00:00:00 UTC.
var GarminEpoch = time.Unix(consts.GARMIN_EPOCH_OFFSET, 0).UTC()

// MarshalCoord32 converts decimal degrees into the 32-bit fixed-point angular
// unit used by waypoint and area coordinates: a signed raw value spanning the
// full 360 degrees, raw = degrees * 2^32 / 360, stored as 4 little-endian
// bytes. Exactly +180 wraps to -180; the format produces nothing outside
// that range.
func MarshalCoord32(degrees float64) [4]byte {
	var data [4]byte
	raw := int32(int64(math.Round(degrees * (1 << 32) / 360)))
	binary.LittleEndian.PutUint32(data[:], uint32(raw))
	return data
}

// UnmarshalCoord32 converts a 4-byte little-endian fixed-point value back to
// decimal degrees: degrees = raw * 360 / 2^32. The identity
// MarshalCoord32(UnmarshalCoord32(x)) == x holds for every representable raw
// value; float64 carries the 40-bit product exactly.
func UnmarshalCoord32(data [4]byte) float64 {
	raw := int32(binary.LittleEndian.Uint32(data[:]))
	return float64(raw) * 360 / (1 << 32)
}

// MarshalCoord24 converts decimal degrees into the 24-bit fixed-point unit:
// a signed raw value spanning 360 degrees, raw = degrees * 2^24 / 360,
// stored as 3 little-endian bytes.
func MarshalCoord24(degrees float64) [3]byte {
	var data [3]byte
	raw := int32(int64(math.Round(degrees * (1 << 24) / 360)))
	data[0] = byte(raw)
	data[1] = byte(raw >> 8)
	data[2] = byte(raw >> 16)
	return data
}

// UnmarshalCoord24 converts 3 little-endian bytes, sign-extended to 4, back
// to decimal degrees: degrees = raw * 360 / 2^24.
func UnmarshalCoord24(data [3]byte) float64 {
	raw := int32(uint32(data[0])|uint32(data[1])<<8|uint32(data[2])<<16) << 8 >> 8
	return float64(raw) * 360 / (1 << 24)
}

// CoordPair is a latitude/longitude pair in decimal degrees.
type CoordPair struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MarshalCoordPair32 emits latitude then longitude as two 32-bit fixed-point
// coordinates (8 bytes total).
func MarshalCoordPair32(p CoordPair) [8]byte {
	var data [8]byte
	lat := MarshalCoord32(p.Latitude)
	lon := MarshalCoord32(p.Longitude)
	copy(data[0:4], lat[:])
	copy(data[4:8], lon[:])
	return data
}

// UnmarshalCoordPair32 decodes latitude then longitude from 8 bytes.
func UnmarshalCoordPair32(data [8]byte) CoordPair {
	var lat, lon [4]byte
	copy(lat[:], data[0:4])
	copy(lon[:], data[4:8])
	return CoordPair{
		Latitude:  UnmarshalCoord32(lat),
		Longitude: UnmarshalCoord32(lon),
	}
}

// MarshalTimestamp converts an absolute time into seconds since the Garmin
// epoch as a 4-byte little-endian field. Times at or before the epoch encode
// as zero, which is also what the unset sentinel re-encodes to.
func MarshalTimestamp(t time.Time) [4]byte {
	var data [4]byte
	secs := t.Unix() - consts.GARMIN_EPOCH_OFFSET
	if secs < 0 {
		secs = 0
	}
	binary.LittleEndian.PutUint32(data[:], uint32(secs))
	return data
}

// UnmarshalTimestamp converts a 4-byte little-endian Garmin timestamp into an
// absolute time. The sentinel 0xFFFFFFFF decodes to the Garmin epoch.
func UnmarshalTimestamp(data [4]byte) time.Time {
	secs := binary.LittleEndian.Uint32(data[:])
	if secs == consts.GPI_TIMESTAMP_UNSET {
		secs = 0
	}
	return GarminEpoch.Add(time.Duration(secs) * time.Second)
}

// Flags16 is a 16-bit flag field with individually addressable bits. Bit 0 is
// the least significant bit of the first wire byte.
type Flags16 uint16

// Bit reports whether bit i (0..15) is set.
func (f Flags16) Bit(i uint) bool {
	return f&(1<<i) != 0
}

// SetBit sets or clears bit i (0..15).
func (f *Flags16) SetBit(i uint, value bool) {
	if value {
		*f |= 1 << i
	} else {
		*f &^= 1 << i
	}
}

// MarshalFlags16 emits the flag field as 2 little-endian bytes.
func MarshalFlags16(f Flags16) [2]byte {
	var data [2]byte
	binary.LittleEndian.PutUint16(data[:], uint16(f))
	return data
}

// UnmarshalFlags16 decodes the flag field from 2 little-endian bytes.
func UnmarshalFlags16(data [2]byte) Flags16 {
	return Flags16(binary.LittleEndian.Uint16(data[:]))
}

// MarshalVec16 emits a byte string with a 16-bit little-endian length prefix.
func MarshalVec16(v []byte) []byte {
	buf := make([]byte, 2+len(v))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(v)))
	copy(buf[2:], v)
	return buf
}

// UnmarshalVec16 decodes a 16-bit length-prefixed byte string from the front
// of data, returning the value and the number of bytes consumed.
func UnmarshalVec16(data []byte) ([]byte, int, error) {
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("vec16: %d bytes left for length prefix", len(data))
	}
	n := int(binary.LittleEndian.Uint16(data[0:2]))
	if len(data) < 2+n {
		return nil, 0, fmt.Errorf("vec16: declared %d bytes, %d available", n, len(data)-2)
	}
	if n == 0 {
		return nil, 2, nil
	}
	v := make([]byte, n)
	copy(v, data[2:2+n])
	return v, 2 + n, nil
}

// Vec16ByteCount returns the wire size of a 16-bit length-prefixed byte
// string: prefix plus payload.
func Vec16ByteCount(v []byte) int {
	return 2 + len(v)
}

// MarshalVec32 emits a byte string with a 32-bit little-endian length prefix.
func MarshalVec32(v []byte) []byte {
	buf := make([]byte, 4+len(v))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(v)))
	copy(buf[4:], v)
	return buf
}

// UnmarshalVec32 decodes a 32-bit length-prefixed byte string from the front
// of data, returning the value and the number of bytes consumed.
func UnmarshalVec32(data []byte) ([]byte, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("vec32: %d bytes left for length prefix", len(data))
	}
	n := int(binary.LittleEndian.Uint32(data[0:4]))
	if len(data) < 4+n {
		return nil, 0, fmt.Errorf("vec32: declared %d bytes, %d available", n, len(data)-4)
	}
	if n == 0 {
		return nil, 4, nil
	}
	v := make([]byte, n)
	copy(v, data[4:4+n])
	return v, 4 + n, nil
}

// Vec32ByteCount returns the wire size of a 32-bit length-prefixed byte
// string.
func Vec32ByteCount(v []byte) int {
	return 4 + len(v)
}
