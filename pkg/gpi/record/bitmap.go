package record

import (
	"encoding/binary"
	"fmt"

	"github.com/GravisZro/gpi-kit/pkg/consts"
	"github.com/GravisZro/gpi-kit/pkg/gpi/encoding"
)

// BitmapReference points a waypoint or category at a Bitmap record by id
// (type 4). Some files append an undocumented 16-bit value, observed as 2;
// its presence is determined by the primary data size.
type BitmapReference struct {
	RecordBase
	BitmapID uint16  `json:"bitmap_id"`
	Unknown  *uint16 `json:"unknown,omitempty"`
}

// Kind returns KindBitmapReference.
func (b *BitmapReference) Kind() Kind {
	return KindBitmapReference
}

func (b *BitmapReference) unmarshalBody(data []byte) (int, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("bitmap reference: body %d bytes, need at least 2", len(data))
	}
	b.BitmapID = binary.LittleEndian.Uint16(data[0:2])
	b.Unknown = nil
	if len(data) >= 4 {
		u := binary.LittleEndian.Uint16(data[2:4])
		b.Unknown = &u
		return 4, nil
	}
	return 2, nil
}

func (b *BitmapReference) marshalBody() ([]byte, []byte, error) {
	buf := make([]byte, 0, 4)
	buf = binary.LittleEndian.AppendUint16(buf, b.BitmapID)
	if b.Unknown != nil {
		buf = binary.LittleEndian.AppendUint16(buf, *b.Unknown)
	}
	return buf, nil, nil
}

// Bitmap is an icon image (type 5): a fixed 36-byte prefix followed by raw
// pixel data, a 32-bit palette and an optional transparency mask filling the
// remainder of the primary data. Flag bit 0 reports mask presence and is
// recomputed on encode.
type Bitmap struct {
	RecordBase
	BitmapID         uint16           `json:"bitmap_id"`
	Height           uint16           `json:"height"`
	Width            uint16           `json:"width"`
	LineLength       uint16           `json:"line_length"` // bytes per row
	BitsPerPixel     uint16           `json:"bits_per_pixel"`
	Reserved0        uint16           `json:"reserved0"` // 0
	ImageOffset      uint32           `json:"image_offset"` // 44 from start of record
	TransparentColor uint32           `json:"transparent_color"`
	Reserved1        uint16           `json:"reserved1"` // 0
	Flags            encoding.Flags16 `json:"flags"`
	PaletteOffset    uint32           `json:"palette_offset"`
	ImageData        []byte           `json:"image_data"`
	PaletteData      []uint32         `json:"palette_data"`
	MaskData         []byte           `json:"mask_data"`
}

// Kind returns KindBitmap.
func (b *Bitmap) Kind() Kind {
	return KindBitmap
}

func (b *Bitmap) unmarshalBody(data []byte) (int, error) {
	statics := consts.GPI_BITMAP_STATICS_SIZE
	if len(data) < statics {
		return 0, fmt.Errorf("bitmap: body %d bytes, need at least %d", len(data), statics)
	}
	b.BitmapID = binary.LittleEndian.Uint16(data[0:2])
	b.Height = binary.LittleEndian.Uint16(data[2:4])
	b.Width = binary.LittleEndian.Uint16(data[4:6])
	b.LineLength = binary.LittleEndian.Uint16(data[6:8])
	b.BitsPerPixel = binary.LittleEndian.Uint16(data[8:10])
	b.Reserved0 = binary.LittleEndian.Uint16(data[10:12])
	imageLen := int(binary.LittleEndian.Uint32(data[12:16]))
	b.ImageOffset = binary.LittleEndian.Uint32(data[16:20])
	paletteSize := int(binary.LittleEndian.Uint32(data[20:24]))
	b.TransparentColor = binary.LittleEndian.Uint32(data[24:28])
	b.Reserved1 = binary.LittleEndian.Uint16(data[28:30])
	var fb [2]byte
	copy(fb[:], data[30:32])
	b.Flags = encoding.UnmarshalFlags16(fb)
	b.PaletteOffset = binary.LittleEndian.Uint32(data[32:36])

	if len(data) < statics+imageLen+paletteSize*4 {
		return statics, fmt.Errorf("bitmap: image %d + palette %d entries exceed body of %d bytes",
			imageLen, paletteSize, len(data))
	}
	offset := statics

	b.ImageData = nil
	if imageLen > 0 {
		b.ImageData = make([]byte, imageLen)
		copy(b.ImageData, data[offset:offset+imageLen])
		offset += imageLen
	}

	b.PaletteData = nil
	if paletteSize > 0 {
		b.PaletteData = make([]uint32, paletteSize)
		for i := range b.PaletteData {
			b.PaletteData[i] = binary.LittleEndian.Uint32(data[offset : offset+4])
			offset += 4
		}
	}

	// Mask length is implied by the declared size rather than the flag bit.
	b.MaskData = nil
	if offset < len(data) {
		b.MaskData = make([]byte, len(data)-offset)
		copy(b.MaskData, data[offset:])
	}
	return len(data), nil
}

func (b *Bitmap) marshalBody() ([]byte, []byte, error) {
	b.Flags.SetBit(0, len(b.MaskData) > 0)

	size := consts.GPI_BITMAP_STATICS_SIZE + len(b.ImageData) + len(b.PaletteData)*4 + len(b.MaskData)
	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint16(buf, b.BitmapID)
	buf = binary.LittleEndian.AppendUint16(buf, b.Height)
	buf = binary.LittleEndian.AppendUint16(buf, b.Width)
	buf = binary.LittleEndian.AppendUint16(buf, b.LineLength)
	buf = binary.LittleEndian.AppendUint16(buf, b.BitsPerPixel)
	buf = binary.LittleEndian.AppendUint16(buf, b.Reserved0)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b.ImageData)))
	buf = binary.LittleEndian.AppendUint32(buf, b.ImageOffset)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b.PaletteData)))
	buf = binary.LittleEndian.AppendUint32(buf, b.TransparentColor)
	buf = binary.LittleEndian.AppendUint16(buf, b.Reserved1)
	fb := encoding.MarshalFlags16(b.Flags)
	buf = append(buf, fb[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, b.PaletteOffset)

	buf = append(buf, b.ImageData...)
	for _, entry := range b.PaletteData {
		buf = binary.LittleEndian.AppendUint32(buf, entry)
	}
	buf = append(buf, b.MaskData...)
	return buf, nil, nil
}

// CategoryReference points a waypoint at a Category record by id (type 6).
type CategoryReference struct {
	RecordBase
	CategoryID uint16 `json:"category_id"`
}

// Kind returns KindCategoryReference.
func (c *CategoryReference) Kind() Kind {
	return KindCategoryReference
}

func (c *CategoryReference) unmarshalBody(data []byte) (int, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("category reference: body %d bytes, need 2", len(data))
	}
	c.CategoryID = binary.LittleEndian.Uint16(data[0:2])
	return 2, nil
}

func (c *CategoryReference) marshalBody() ([]byte, []byte, error) {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, c.CategoryID)
	return buf, nil, nil
}

// Category names a waypoint grouping (type 7). Its auxiliary data may carry
// a BitmapReference child.
type Category struct {
	RecordBase
	CategoryID uint16                    `json:"category_id"`
	Name       encoding.LocalizedStrings `json:"name"`
}

// Kind returns KindCategory.
func (c *Category) Kind() Kind {
	return KindCategory
}

func (c *Category) unmarshalBody(data []byte) (int, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("category: body %d bytes, need at least 2", len(data))
	}
	c.CategoryID = binary.LittleEndian.Uint16(data[0:2])
	n, err := c.Name.Unmarshal(data[2:])
	if err != nil {
		return 2, fmt.Errorf("category name: %w", err)
	}
	return 2 + n, nil
}

func (c *Category) marshalBody() ([]byte, []byte, error) {
	buf := make([]byte, 0, 2+c.Name.ByteCount())
	buf = binary.LittleEndian.AppendUint16(buf, c.CategoryID)
	buf = append(buf, c.Name.Marshal()...)
	return buf, nil, nil
}
