package record

import (
	"encoding/binary"
	"fmt"

	"github.com/GravisZro/gpi-kit/pkg/consts"
	"github.com/GravisZro/gpi-kit/pkg/gpi/encoding"
)

// Header flag bits. Bit 3 of the first flag byte marks the extended header
// form; bit 4 has been observed on format-'01' parent records when certain
// auxiliary children are present.
const (
	HeaderFlagExtended  = 3
	HeaderFlagAuxMarker = 4
)

// Header is the fixed prefix of every record: type, two packed flag bytes,
// and one or two length fields. EndOfRecord counts the bytes from the end of
// the header to the end of the record, auxiliary data included. EndOfData,
// present only in the extended form, counts the bytes to the end of primary
// data.
type Header struct {
	Type        Kind             `json:"type"`
	Flags       encoding.Flags16 `json:"flags"`
	EndOfRecord uint32           `json:"end_of_record"`
	EndOfData   *uint32          `json:"end_of_data,omitempty"`
}

// Size returns the header's wire size: 8 bytes, or 12 in the extended form.
func (h *Header) Size() int {
	if h.EndOfData != nil {
		return consts.GPI_EXTENDED_HEADER_SIZE
	}
	return consts.GPI_HEADER_SIZE
}

// DataSize returns the primary data length. Without the extended form the
// whole record is primary data.
func (h *Header) DataSize() uint32 {
	if h.EndOfData != nil {
		return *h.EndOfData
	}
	return h.EndOfRecord
}

// AuxDataSize returns the auxiliary (child record) region length.
func (h *Header) AuxDataSize() uint32 {
	if h.EndOfData != nil {
		return h.EndOfRecord - *h.EndOfData
	}
	return 0
}

// Marshal emits the header. The extended-form flag bit is forced to agree
// with the presence of EndOfData; the remaining flag bits are emitted as
// held.
func (h *Header) Marshal() []byte {
	flags := h.Flags
	flags.SetBit(HeaderFlagExtended, h.EndOfData != nil)

	buf := make([]byte, h.Size())
	binary.LittleEndian.PutUint16(buf[0:2], uint16(h.Type))
	fb := encoding.MarshalFlags16(flags)
	copy(buf[2:4], fb[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.EndOfRecord)
	if h.EndOfData != nil {
		binary.LittleEndian.PutUint32(buf[8:12], *h.EndOfData)
	}
	return buf
}

// readHeader consumes one record header from the stream. A clean EOF before
// the first byte is reported as io.EOF so the driver can finish without an
// error; anything shorter than a full header is an unexpected EOF.
func readHeader(r *Reader) (Header, error) {
	var h Header

	fixed, err := r.ReadFull(consts.GPI_HEADER_SIZE)
	if err != nil {
		return h, err
	}

	h.Type = Kind(binary.LittleEndian.Uint16(fixed[0:2]))
	var fb [2]byte
	copy(fb[:], fixed[2:4])
	h.Flags = encoding.UnmarshalFlags16(fb)
	h.EndOfRecord = binary.LittleEndian.Uint32(fixed[4:8])

	extended := h.Flags.Bit(HeaderFlagExtended)
	// The bit is re-derived from EndOfData on encode; holding it normalized
	// keeps decoded records comparable with constructed ones.
	h.Flags.SetBit(HeaderFlagExtended, false)

	if extended {
		ext, err := r.ReadFull(4)
		if err != nil {
			return h, fmt.Errorf("record %s extended header: %w", h.Type, err)
		}
		eod := binary.LittleEndian.Uint32(ext)
		if eod > h.EndOfRecord {
			return h, fmt.Errorf("record %s: end_of_data %d exceeds end_of_record %d",
				h.Type, eod, h.EndOfRecord)
		}
		h.EndOfData = &eod
	}

	return h, nil
}
