package record

import (
	"encoding/binary"
	"fmt"

	"github.com/GravisZro/gpi-kit/pkg/gpi/encoding"
)

// Area is a bounding box (type 8) grouping the waypoints of a region. Areas
// appear packed inside a POI group's primary data; their own auxiliary data
// may carry nested areas, waypoints and speed cameras.
type Area struct {
	RecordBase
	CoordinatesMax encoding.CoordPair `json:"coordinates_max"`
	CoordinatesMin encoding.CoordPair `json:"coordinates_min"`
	Reserved       uint32             `json:"reserved"` // 0
	// bit0: always set.
	Flags   encoding.Flags16 `json:"flags"`
	Unknown uint8            `json:"unknown"`
}

// Kind returns KindArea.
func (a *Area) Kind() Kind {
	return KindArea
}

func (a *Area) unmarshalBody(data []byte) (int, error) {
	if len(data) < 23 {
		return 0, fmt.Errorf("area: body %d bytes, need 23", len(data))
	}
	var max, min [8]byte
	copy(max[:], data[0:8])
	copy(min[:], data[8:16])
	a.CoordinatesMax = encoding.UnmarshalCoordPair32(max)
	a.CoordinatesMin = encoding.UnmarshalCoordPair32(min)
	a.Reserved = binary.LittleEndian.Uint32(data[16:20])
	var fb [2]byte
	copy(fb[:], data[20:22])
	a.Flags = encoding.UnmarshalFlags16(fb)
	a.Unknown = data[22]
	return 23, nil
}

func (a *Area) marshalBody() ([]byte, []byte, error) {
	buf := make([]byte, 0, 23)
	max := encoding.MarshalCoordPair32(a.CoordinatesMax)
	min := encoding.MarshalCoordPair32(a.CoordinatesMin)
	buf = append(buf, max[:]...)
	buf = append(buf, min[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, a.Reserved)
	fb := encoding.MarshalFlags16(a.Flags)
	buf = append(buf, fb[:]...)
	buf = append(buf, a.Unknown)
	return buf, nil, nil
}

// POIGroup names a data source and carries its areas (type 9). The areas are
// complete records, auxiliary data included, packed into the group's primary
// data after the source string; the group's own auxiliary data may carry
// categories, bitmaps and audio files shared by the areas' waypoints.
type POIGroup struct {
	RecordBase
	Source encoding.LocalizedStrings `json:"source"`
	Areas  []*Area                   `json:"areas"`
}

// Kind returns KindPOIGroup.
func (g *POIGroup) Kind() Kind {
	return KindPOIGroup
}

func (g *POIGroup) marshalBody() ([]byte, []byte, error) {
	buf := g.Source.Marshal()
	for _, area := range g.Areas {
		ab, err := Marshal(area)
		if err != nil {
			return nil, nil, fmt.Errorf("poi group area: %w", err)
		}
		buf = append(buf, ab...)
	}
	return buf, nil, nil
}
