package record

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/GravisZro/gpi-kit/pkg/logging"
)

// Record is one node of the decoded record forest. A record exclusively owns
// its fields and its child list; children populate the auxiliary region of
// the parent on the wire.
type Record interface {
	// Kind returns the record's wire type code.
	Kind() Kind
	// Header returns the record's common header. Length fields and the
	// extended-form flag are recomputed on encode; values left from decode
	// are never trusted.
	Header() *Header
	// Children returns the auxiliary child records in wire order.
	Children() []Record
	// AddChild appends an auxiliary child record.
	AddChild(child Record)

	// marshalBody emits the record's own bytes: the primary data region and,
	// for kinds whose variable tail lives in the auxiliary region (Address,
	// Contact, AudioFile, opaque pass-through), the body-owned auxiliary
	// bytes.
	marshalBody() (data []byte, aux []byte, err error)
}

// bodyUnmarshaler is implemented by every kind whose body decodes from a
// contiguous region without recursing into the record walker.
type bodyUnmarshaler interface {
	unmarshalBody(data []byte) (int, error)
}

// RecordBase carries the fields shared by every record kind.
type RecordBase struct {
	RecordHeader Header   `json:"header"`
	ChildRecords []Record `json:"children,omitempty"`
}

// Header returns the record's common header.
func (b *RecordBase) Header() *Header {
	return &b.RecordHeader
}

// Children returns the auxiliary child records in wire order.
func (b *RecordBase) Children() []Record {
	return b.ChildRecords
}

// AddChild appends an auxiliary child record.
func (b *RecordBase) AddChild(child Record) {
	b.ChildRecords = append(b.ChildRecords, child)
}

// ownsAuxRegion reports whether a kind encodes the presence of its auxiliary
// content inside the primary body itself (presence bits or length prefixes),
// so the child walker must not consume its auxiliary region.
func ownsAuxRegion(k Kind) bool {
	return k == KindAddress || k == KindContact || k == KindAudioFile
}

// newRecord constructs the empty concrete record for a decoded header.
func newRecord(h Header) (Record, bool) {
	var rec Record
	switch h.Type {
	case KindGarminHeader:
		rec = &GarminHeader{}
	case KindPOIHeader:
		rec = &POIHeader{}
	case KindWaypoint:
		rec = &Waypoint{}
	case KindAlert:
		rec = &Alert{}
	case KindBitmapReference:
		rec = &BitmapReference{}
	case KindBitmap:
		rec = &Bitmap{}
	case KindCategoryReference:
		rec = &CategoryReference{}
	case KindCategory:
		rec = &Category{}
	case KindArea:
		rec = &Area{}
	case KindPOIGroup:
		rec = &POIGroup{}
	case KindComment:
		rec = &Comment{}
	case KindAddress:
		rec = &Address{}
	case KindContact:
		rec = &Contact{}
	case KindImageFile:
		rec = &ImageFile{}
	case KindDescription:
		rec = &Description{}
	case KindRecord15:
		rec = &Record15{}
	case KindRecord16:
		rec = &Record16{}
	case KindCopyright:
		rec = &Copyright{}
	case KindAudioFile:
		rec = &AudioFile{}
	case KindEnd:
		rec = &End{}
	default:
		if h.Type.IsOpaque() {
			rec = &Opaque{OpaqueKind: h.Type}
		} else {
			return nil, false
		}
	}
	*rec.Header() = h
	return rec, true
}

// Decode consumes one record, its body and its auxiliary children from the
// stream. io.EOF before the first header byte is passed through untouched so
// the caller can treat it as a clean stream end. When the returned error is a
// *LengthMismatchError the declared record region has still been fully
// consumed, so the caller may continue with the next record.
func Decode(r *Reader, log logr.Logger) (Record, error) {
	offset := r.Pos()

	h, err := readHeader(r)
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("record header at offset %d: %w", offset, err)
	}

	rec, ok := newRecord(h)
	if !ok {
		return nil, &UnknownRecordTypeError{Type: uint16(h.Type), Offset: offset}
	}

	log.V(logging.TRACE).Info("decoding record",
		"kind", h.Type.String(), "offset", offset,
		"dataSize", h.DataSize(), "auxSize", h.AuxDataSize())

	switch {
	case h.Type == KindEnd:
		// Bare header; any declared body would be malformed, skip it.
		if h.EndOfRecord > 0 {
			if err := r.Skip(int64(h.EndOfRecord)); err != nil {
				return nil, fmt.Errorf("end record at offset %d: %w", offset, err)
			}
		}
		return rec, nil

	case h.Type.IsOpaque():
		op := rec.(*Opaque)
		if op.Data, err = r.ReadFull(int(h.DataSize())); err != nil {
			return nil, fmt.Errorf("record %s at offset %d: %w", h.Type, offset, err)
		}
		if aux := int(h.AuxDataSize()); aux > 0 {
			if op.Aux, err = r.ReadFull(aux); err != nil {
				return nil, fmt.Errorf("record %s at offset %d: %w", h.Type, offset, err)
			}
		}
		return rec, nil

	case ownsAuxRegion(h.Type):
		// Presence of the variable tail is encoded in the primary body, so
		// the whole record region belongs to the body codec.
		body, err := r.ReadFull(int(h.EndOfRecord))
		if err != nil {
			return nil, fmt.Errorf("record %s at offset %d: %w", h.Type, offset, err)
		}
		consumed, err := rec.(bodyUnmarshaler).unmarshalBody(body)
		if err != nil {
			return rec, &LengthMismatchError{Kind: h.Type, Offset: offset,
				Declared: h.EndOfRecord, Consumed: uint32(consumed)}
		}
		if consumed < len(body) {
			log.V(logging.DEBUG).Info("bytes not parsed in record",
				"kind", h.Type.String(), "offset", offset, "bytes", len(body)-consumed)
		}
		return rec, nil

	case h.Type == KindPOIGroup:
		body, err := r.ReadFull(int(h.DataSize()))
		if err != nil {
			return nil, fmt.Errorf("record %s at offset %d: %w", h.Type, offset, err)
		}
		group := rec.(*POIGroup)
		if err := decodeGroupBody(group, body, log); err != nil {
			if skipErr := r.Skip(int64(h.AuxDataSize())); skipErr != nil {
				return nil, fmt.Errorf("record %s at offset %d: %w", h.Type, offset, skipErr)
			}
			return rec, &LengthMismatchError{Kind: h.Type, Offset: offset,
				Declared: h.DataSize(), Consumed: 0}
		}
		decodeChildren(rec, r, offset, h.AuxDataSize(), log)
		return rec, nil

	default:
		body, err := r.ReadFull(int(h.DataSize()))
		if err != nil {
			return nil, fmt.Errorf("record %s at offset %d: %w", h.Type, offset, err)
		}
		consumed, err := rec.(bodyUnmarshaler).unmarshalBody(body)
		if err != nil {
			// The declared region must still be drained so the stream stays
			// aligned with the next record.
			if skipErr := r.Skip(int64(h.AuxDataSize())); skipErr != nil {
				return nil, fmt.Errorf("record %s at offset %d: %w", h.Type, offset, skipErr)
			}
			return rec, &LengthMismatchError{Kind: h.Type, Offset: offset,
				Declared: h.DataSize(), Consumed: uint32(consumed)}
		}
		if consumed < len(body) {
			log.V(logging.DEBUG).Info("bytes not parsed in record",
				"kind", h.Type.String(), "offset", offset, "bytes", len(body)-consumed)
		}
		decodeChildren(rec, r, offset, h.AuxDataSize(), log)
		return rec, nil
	}
}

// decodeGroupBody decodes a POI group's primary data: the localized source
// string followed by a packed sequence of complete Area records.
func decodeGroupBody(group *POIGroup, body []byte, log logr.Logger) error {
	n, err := group.Source.Unmarshal(body)
	if err != nil {
		return fmt.Errorf("poi group source: %w", err)
	}

	sub := NewReader(bytes.NewReader(body[n:]))
	for sub.Pos() < int64(len(body)-n) {
		child, err := Decode(sub, log)
		if err != nil {
			return fmt.Errorf("poi group area list: %w", err)
		}
		area, ok := child.(*Area)
		if !ok {
			return fmt.Errorf("poi group embeds %s record, expected %s",
				child.Kind(), KindArea)
		}
		group.Areas = append(group.Areas, area)
	}
	return nil
}

// decodeChildren consumes the parent's auxiliary region as a sequence of
// child records until the declared byte budget is exhausted. A failure inside
// the region aborts the region, not the enclosing stream: the budget has
// already been carved out of the parent's declared length.
func decodeChildren(parent Record, r *Reader, parentOffset int64, budget uint32, log logr.Logger) {
	if budget == 0 {
		return
	}

	aux, err := r.ReadFull(int(budget))
	if err != nil {
		log.Error(err, "auxiliary region truncated",
			"kind", parent.Kind().String(), "offset", parentOffset, "budget", budget)
		return
	}

	sub := NewReader(bytes.NewReader(aux))
	for sub.Pos() < int64(budget) {
		child, err := Decode(sub, log)
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Error(err, "abandoning auxiliary region",
				"kind", parent.Kind().String(), "offset", parentOffset,
				"consumed", sub.Pos(), "budget", budget)
			return
		}
		parent.AddChild(child)
	}
}

// Marshal emits one record: header, primary data, then auxiliary data. All
// length fields are recomputed from the body and children; the extended
// header form is used exactly when the record carries auxiliary bytes (or,
// for opaque pass-through, when the original header carried the split).
func Marshal(rec Record) ([]byte, error) {
	data, aux, err := rec.marshalBody()
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.Kind(), err)
	}

	for _, child := range rec.Children() {
		cb, err := Marshal(child)
		if err != nil {
			return nil, err
		}
		aux = append(aux, cb...)
	}

	h := rec.Header()
	h.Type = rec.Kind()
	h.EndOfRecord = uint32(len(data) + len(aux))
	if len(aux) > 0 || (rec.Kind().IsOpaque() && h.EndOfData != nil) {
		eod := uint32(len(data))
		h.EndOfData = &eod
	} else {
		h.EndOfData = nil
	}

	out := make([]byte, 0, h.Size()+len(data)+len(aux))
	out = append(out, h.Marshal()...)
	out = append(out, data...)
	out = append(out, aux...)
	return out, nil
}
