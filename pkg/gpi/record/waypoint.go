package record

import (
	"encoding/binary"
	"fmt"

	"github.com/GravisZro/gpi-kit/pkg/gpi/encoding"
)

// Waypoint is a single point of interest (type 2). Its auxiliary data may
// carry category/bitmap references, an alert, comments, an address, contact
// details, image files and a description.
type Waypoint struct {
	RecordBase
	Coordinates encoding.CoordPair `json:"coordinates"`
	Reserved    uint8              `json:"reserved"` // 0
	// bit0: alert record present in auxiliary data; bit8: always set.
	Flags     encoding.Flags16          `json:"flags"`
	Shortname encoding.LocalizedStrings `json:"shortname"`
}

// Kind returns KindWaypoint.
func (w *Waypoint) Kind() Kind {
	return KindWaypoint
}

func (w *Waypoint) unmarshalBody(data []byte) (int, error) {
	if len(data) < 11 {
		return 0, fmt.Errorf("waypoint: body %d bytes, need at least 11", len(data))
	}
	var coords [8]byte
	copy(coords[:], data[0:8])
	w.Coordinates = encoding.UnmarshalCoordPair32(coords)
	w.Reserved = data[8]
	var fb [2]byte
	copy(fb[:], data[9:11])
	w.Flags = encoding.UnmarshalFlags16(fb)

	n, err := w.Shortname.Unmarshal(data[11:])
	if err != nil {
		return 11, fmt.Errorf("waypoint shortname: %w", err)
	}
	return 11 + n, nil
}

func (w *Waypoint) marshalBody() ([]byte, []byte, error) {
	buf := make([]byte, 0, 11+w.Shortname.ByteCount())
	coords := encoding.MarshalCoordPair32(w.Coordinates)
	buf = append(buf, coords[:]...)
	buf = append(buf, w.Reserved)
	fb := encoding.MarshalFlags16(w.Flags)
	buf = append(buf, fb[:]...)
	buf = append(buf, w.Shortname.Marshal()...)
	return buf, nil, nil
}

// Alert is a proximity/speed alert (type 3) attached to a waypoint. SourceID
// is a symbol id, built-in clip id or media record id depending on Source.
type Alert struct {
	RecordBase
	Proximity uint16 `json:"proximity"` // meters
	Velocity  uint16 `json:"velocity"`  // 100 * m/s, 0 = none
	Unknown6  uint16 `json:"unknown6"`  // seen 0 and 0x100
	Unknown7  uint16 `json:"unknown7"`  // seen 0 and 0x100
	Enabled   bool   `json:"enabled"`
	Trigger   AlertTrigger `json:"trigger"`
	SourceID  uint8        `json:"source_id"`
	Source    AlertSource  `json:"source"`
}

// Kind returns KindAlert.
func (a *Alert) Kind() Kind {
	return KindAlert
}

func (a *Alert) unmarshalBody(data []byte) (int, error) {
	if len(data) < 12 {
		return 0, fmt.Errorf("alert: body %d bytes, need 12", len(data))
	}
	a.Proximity = binary.LittleEndian.Uint16(data[0:2])
	a.Velocity = binary.LittleEndian.Uint16(data[2:4])
	a.Unknown6 = binary.LittleEndian.Uint16(data[4:6])
	a.Unknown7 = binary.LittleEndian.Uint16(data[6:8])
	a.Enabled = data[8] != 0
	a.Trigger = AlertTrigger(data[9])
	a.SourceID = data[10]
	a.Source = AlertSource(data[11])
	return 12, nil
}

func (a *Alert) marshalBody() ([]byte, []byte, error) {
	buf := make([]byte, 0, 12)
	buf = binary.LittleEndian.AppendUint16(buf, a.Proximity)
	buf = binary.LittleEndian.AppendUint16(buf, a.Velocity)
	buf = binary.LittleEndian.AppendUint16(buf, a.Unknown6)
	buf = binary.LittleEndian.AppendUint16(buf, a.Unknown7)
	enabled := byte(0)
	if a.Enabled {
		enabled = 1
	}
	buf = append(buf, enabled, byte(a.Trigger), a.SourceID, byte(a.Source))
	return buf, nil, nil
}

// Comment is a localized free-text annotation (type 10).
type Comment struct {
	RecordBase
	Text encoding.LocalizedStrings `json:"text"`
}

// Kind returns KindComment.
func (c *Comment) Kind() Kind {
	return KindComment
}

func (c *Comment) unmarshalBody(data []byte) (int, error) {
	n, err := c.Text.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("comment text: %w", err)
	}
	return n, nil
}

func (c *Comment) marshalBody() ([]byte, []byte, error) {
	return c.Text.Marshal(), nil, nil
}

// Description is a localized long-form text (type 14). The leading byte is
// undocumented; 1, 5 and 50 have been observed.
type Description struct {
	RecordBase
	Unknown uint8                     `json:"unknown"`
	Text    encoding.LocalizedStrings `json:"text"`
}

// Kind returns KindDescription.
func (d *Description) Kind() Kind {
	return KindDescription
}

func (d *Description) unmarshalBody(data []byte) (int, error) {
	if len(data) < 1 {
		return 0, fmt.Errorf("description: empty body")
	}
	d.Unknown = data[0]
	n, err := d.Text.Unmarshal(data[1:])
	if err != nil {
		return 1, fmt.Errorf("description text: %w", err)
	}
	return 1 + n, nil
}

func (d *Description) marshalBody() ([]byte, []byte, error) {
	buf := make([]byte, 0, 1+d.Text.ByteCount())
	buf = append(buf, d.Unknown)
	buf = append(buf, d.Text.Marshal()...)
	return buf, nil, nil
}

// ImageFile is an embedded picture (type 13) attached to a waypoint.
type ImageFile struct {
	RecordBase
	Unknown   uint8  `json:"unknown"`
	ImageData []byte `json:"image_data"`
}

// Kind returns KindImageFile.
func (f *ImageFile) Kind() Kind {
	return KindImageFile
}

func (f *ImageFile) unmarshalBody(data []byte) (int, error) {
	if len(data) < 1 {
		return 0, fmt.Errorf("image file: empty body")
	}
	f.Unknown = data[0]
	img, n, err := encoding.UnmarshalVec32(data[1:])
	if err != nil {
		return 1, fmt.Errorf("image file data: %w", err)
	}
	f.ImageData = img
	return 1 + n, nil
}

func (f *ImageFile) marshalBody() ([]byte, []byte, error) {
	buf := make([]byte, 0, 1+encoding.Vec32ByteCount(f.ImageData))
	buf = append(buf, f.Unknown)
	buf = append(buf, encoding.MarshalVec32(f.ImageData)...)
	return buf, nil, nil
}

// Point3D is one entry of a Record16 polyline: a coordinate pair plus an
// undocumented 32-bit value, possibly altitude.
type Point3D struct {
	Location encoding.CoordPair `json:"location"`
	Unknown  uint32             `json:"unknown"`
}

// Record16 is a count-prefixed list of 3D points (type 16) attached to
// along-road alerts.
type Record16 struct {
	RecordBase
	Points []Point3D `json:"points"`
}

// Kind returns KindRecord16.
func (r *Record16) Kind() Kind {
	return KindRecord16
}

func (r *Record16) unmarshalBody(data []byte) (int, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("record16: body %d bytes, need at least 2", len(data))
	}
	count := int(binary.LittleEndian.Uint16(data[0:2]))
	if len(data) < 2+count*12 {
		return 2, fmt.Errorf("record16: %d points declared, %d bytes available", count, len(data)-2)
	}
	r.Points = nil
	if count == 0 {
		return 2, nil
	}
	r.Points = make([]Point3D, count)
	offset := 2
	for i := range r.Points {
		var coords [8]byte
		copy(coords[:], data[offset:offset+8])
		r.Points[i].Location = encoding.UnmarshalCoordPair32(coords)
		r.Points[i].Unknown = binary.LittleEndian.Uint32(data[offset+8 : offset+12])
		offset += 12
	}
	return offset, nil
}

func (r *Record16) marshalBody() ([]byte, []byte, error) {
	buf := make([]byte, 0, 2+len(r.Points)*12)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(r.Points)))
	for i := range r.Points {
		coords := encoding.MarshalCoordPair32(r.Points[i].Location)
		buf = append(buf, coords[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, r.Points[i].Unknown)
	}
	return buf, nil, nil
}
