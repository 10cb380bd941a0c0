package record

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/GravisZro/gpi-kit/pkg/consts"
	"github.com/GravisZro/gpi-kit/pkg/gpi/encoding"
)

// GarminHeader is the GRMREC file header record (type 0). Its auxiliary data
// carries one Record15 child.
type GarminHeader struct {
	RecordBase
	Magic   string           `json:"magic"`   // "GRMREC"
	Version string           `json:"version"` // "00" or "01"
	Created time.Time        `json:"created"`
	Flags   encoding.Flags16 `json:"flags"` // bit0: obfuscation
	Name    []byte           `json:"name"`
}

// Kind returns KindGarminHeader.
func (g *GarminHeader) Kind() Kind {
	return KindGarminHeader
}

func (g *GarminHeader) unmarshalBody(data []byte) (int, error) {
	if len(data) < 14 {
		return 0, fmt.Errorf("garmin header: body %d bytes, need at least 14", len(data))
	}
	g.Magic = string(data[0:6])
	g.Version = string(data[6:8])
	var ts [4]byte
	copy(ts[:], data[8:12])
	g.Created = encoding.UnmarshalTimestamp(ts)
	var fb [2]byte
	copy(fb[:], data[12:14])
	g.Flags = encoding.UnmarshalFlags16(fb)

	name, n, err := encoding.UnmarshalVec16(data[14:])
	if err != nil {
		return 14, fmt.Errorf("garmin header name: %w", err)
	}
	g.Name = name
	return 14 + n, nil
}

func (g *GarminHeader) marshalBody() ([]byte, []byte, error) {
	magic := g.Magic
	if magic == "" {
		magic = consts.GPI_GRMREC_MAGIC
	}
	version := g.Version
	if version == "" {
		version = consts.GPI_FORMAT_VERSION_01
	}
	if len(magic) != 6 || len(version) != 2 {
		return nil, nil, fmt.Errorf("garmin header: magic/version must be 6/2 bytes, got %d/%d",
			len(magic), len(version))
	}

	buf := make([]byte, 0, 14+encoding.Vec16ByteCount(g.Name))
	buf = append(buf, magic...)
	buf = append(buf, version...)
	ts := encoding.MarshalTimestamp(g.Created)
	buf = append(buf, ts[:]...)
	fb := encoding.MarshalFlags16(g.Flags)
	buf = append(buf, fb[:]...)
	buf = append(buf, encoding.MarshalVec16(g.Name)...)
	return buf, nil, nil
}

// POIHeader is the POI file header record (type 1). AuxiliaryType is zero or
// KindCopyright; in the latter case the auxiliary data carries one Copyright
// child.
type POIHeader struct {
	RecordBase
	Magic         string   `json:"magic"`   // "POI\0\0\0"
	Version       string   `json:"version"` // "00" or "01"
	Codepage      Codepage `json:"codepage"`
	AuxiliaryType Kind     `json:"auxiliary_type"`
}

// Kind returns KindPOIHeader.
func (p *POIHeader) Kind() Kind {
	return KindPOIHeader
}

func (p *POIHeader) unmarshalBody(data []byte) (int, error) {
	if len(data) < 12 {
		return 0, fmt.Errorf("poi header: body %d bytes, need 12", len(data))
	}
	p.Magic = string(data[0:6])
	p.Version = string(data[6:8])
	p.Codepage = Codepage(binary.LittleEndian.Uint16(data[8:10]))
	p.AuxiliaryType = Kind(binary.LittleEndian.Uint16(data[10:12]))
	return 12, nil
}

func (p *POIHeader) marshalBody() ([]byte, []byte, error) {
	magic := p.Magic
	if magic == "" {
		magic = consts.GPI_POI_MAGIC
	}
	version := p.Version
	if version == "" {
		version = consts.GPI_FORMAT_VERSION_01
	}
	if len(magic) != 6 || len(version) != 2 {
		return nil, nil, fmt.Errorf("poi header: magic/version must be 6/2 bytes, got %d/%d",
			len(magic), len(version))
	}

	buf := make([]byte, 0, 12)
	buf = append(buf, magic...)
	buf = append(buf, version...)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(p.Codepage))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(p.AuxiliaryType))
	return buf, nil, nil
}

// Record15 is the product identity record carried by the GRMREC header. The
// trailing byte is present on some files only; its meaning is undocumented.
type Record15 struct {
	RecordBase
	MapID     uint16 `json:"map_id"`
	ProductID uint8  `json:"product_id"`
	Region    Region `json:"region"`
	VendorID  uint8  `json:"vendor_id"`
	Unknown   *uint8 `json:"unknown,omitempty"`
}

// Kind returns KindRecord15.
func (r *Record15) Kind() Kind {
	return KindRecord15
}

func (r *Record15) unmarshalBody(data []byte) (int, error) {
	if len(data) < 5 {
		return 0, fmt.Errorf("record15: body %d bytes, need at least 5", len(data))
	}
	r.MapID = binary.LittleEndian.Uint16(data[0:2])
	r.ProductID = data[2]
	r.Region = Region(data[3])
	r.VendorID = data[4]
	r.Unknown = nil
	if len(data) > 5 {
		u := data[5]
		r.Unknown = &u
		return 6, nil
	}
	return 5, nil
}

func (r *Record15) marshalBody() ([]byte, []byte, error) {
	buf := make([]byte, 0, 6)
	buf = binary.LittleEndian.AppendUint16(buf, r.MapID)
	buf = append(buf, r.ProductID, byte(r.Region), r.VendorID)
	if r.Unknown != nil {
		buf = append(buf, *r.Unknown)
	}
	return buf, nil, nil
}

// Copyright presence mask bits. The mask carries more observed-but-unknown
// bits than decoded fields; undecoded bits round-trip through Have, except
// the image-files bit, which re-encodes as zero.
const (
	CopyrightHaveWaypointIndex = 5
	CopyrightHaveImageFiles    = 8
	CopyrightHaveRec2324       = 17
	CopyrightHaveUnknown30     = 20
	CopyrightHaveSpeedCameras  = 23
	CopyrightHaveDeviceModel   = 26
)

// Copyright is the licensing record (type 17) attached to the POI header.
// The image-files block its mask can announce is not decoded; those bytes
// are skipped on read and the bit re-encodes as zero.
type Copyright struct {
	RecordBase
	Have            uint32                     `json:"have"`
	Unknown0        uint16                     `json:"unknown0"`
	Unknown1        uint16                     `json:"unknown1"`
	DataSource      encoding.LocalizedStrings  `json:"data_source"`
	CopyrightNotice encoding.LocalizedStrings  `json:"copyright_notice"`
	DeviceModel     *[]byte                    `json:"device_model,omitempty"`
	Unknown30       *uint16                    `json:"unknown30,omitempty"`
}

// Kind returns KindCopyright.
func (c *Copyright) Kind() Kind {
	return KindCopyright
}

func (c *Copyright) unmarshalBody(data []byte) (int, error) {
	if len(data) < 8 {
		return 0, fmt.Errorf("copyright: body %d bytes, need at least 8", len(data))
	}
	c.Have = binary.LittleEndian.Uint32(data[0:4])
	c.Unknown0 = binary.LittleEndian.Uint16(data[4:6])
	c.Unknown1 = binary.LittleEndian.Uint16(data[6:8])
	offset := 8

	n, err := c.DataSource.Unmarshal(data[offset:])
	if err != nil {
		return offset, fmt.Errorf("copyright data source: %w", err)
	}
	offset += n

	n, err = c.CopyrightNotice.Unmarshal(data[offset:])
	if err != nil {
		return offset, fmt.Errorf("copyright notice: %w", err)
	}
	offset += n

	c.DeviceModel = nil
	if c.Have&(1<<CopyrightHaveDeviceModel) != 0 {
		model, n, err := encoding.UnmarshalVec16(data[offset:])
		if err != nil {
			return offset, fmt.Errorf("copyright device model: %w", err)
		}
		c.DeviceModel = &model
		offset += n
	}

	// The 12-entry image-file block stays undecoded; its bytes fall into the
	// unparsed remainder.

	c.Unknown30 = nil
	if c.Have&(1<<CopyrightHaveUnknown30) != 0 && c.Have&(1<<CopyrightHaveImageFiles) == 0 {
		if len(data)-offset < 2 {
			return offset, fmt.Errorf("copyright: %d bytes left for trailing field", len(data)-offset)
		}
		u := binary.LittleEndian.Uint16(data[offset : offset+2])
		c.Unknown30 = &u
		offset += 2
	}

	return offset, nil
}

func (c *Copyright) marshalBody() ([]byte, []byte, error) {
	have := c.Have
	have &^= 1 << CopyrightHaveImageFiles
	if c.DeviceModel != nil {
		have |= 1 << CopyrightHaveDeviceModel
	} else {
		have &^= 1 << CopyrightHaveDeviceModel
	}
	if c.Unknown30 != nil {
		have |= 1 << CopyrightHaveUnknown30
	} else {
		have &^= 1 << CopyrightHaveUnknown30
	}
	c.Have = have

	buf := make([]byte, 0, 8+c.DataSource.ByteCount()+c.CopyrightNotice.ByteCount())
	buf = binary.LittleEndian.AppendUint32(buf, have)
	buf = binary.LittleEndian.AppendUint16(buf, c.Unknown0)
	buf = binary.LittleEndian.AppendUint16(buf, c.Unknown1)
	buf = append(buf, c.DataSource.Marshal()...)
	buf = append(buf, c.CopyrightNotice.Marshal()...)
	if c.DeviceModel != nil {
		buf = append(buf, encoding.MarshalVec16(*c.DeviceModel)...)
	}
	if c.Unknown30 != nil {
		buf = binary.LittleEndian.AppendUint16(buf, *c.Unknown30)
	}
	return buf, nil, nil
}
