package record

import (
	"encoding/binary"
	"fmt"

	"github.com/GravisZro/gpi-kit/pkg/gpi/encoding"
)

// Address presence mask bits, in field order.
const (
	AddressHaveCity = iota
	AddressHaveCountry
	AddressHaveState
	AddressHavePostalCode
	AddressHaveStreetName
	AddressHaveBuildingID
)

// Address is a postal address (type 11) attached to a waypoint. Field
// presence is declared by a 16-bit mask inside the primary body; on encode
// the mask is recomputed from the fields themselves, never trusted from the
// caller.
type Address struct {
	RecordBase
	Flags      encoding.Flags16           `json:"flags"`
	City       *encoding.LocalizedStrings `json:"city,omitempty"`
	Country    *encoding.LocalizedStrings `json:"country,omitempty"`
	State      *encoding.LocalizedStrings `json:"state,omitempty"`
	PostalCode *[]byte                    `json:"postal_code,omitempty"`
	StreetName *encoding.LocalizedStrings `json:"street_name,omitempty"`
	BuildingID *[]byte                    `json:"building_id,omitempty"`
}

// Kind returns KindAddress.
func (a *Address) Kind() Kind {
	return KindAddress
}

// Have returns the presence mask the fields currently encode to.
func (a *Address) Have() uint16 {
	var have uint16
	if a.City != nil {
		have |= 1 << AddressHaveCity
	}
	if a.Country != nil {
		have |= 1 << AddressHaveCountry
	}
	if a.State != nil {
		have |= 1 << AddressHaveState
	}
	if a.PostalCode != nil {
		have |= 1 << AddressHavePostalCode
	}
	if a.StreetName != nil {
		have |= 1 << AddressHaveStreetName
	}
	if a.BuildingID != nil {
		have |= 1 << AddressHaveBuildingID
	}
	return have
}

func (a *Address) unmarshalBody(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("address: body %d bytes, need at least 4", len(data))
	}
	var fb [2]byte
	copy(fb[:], data[0:2])
	a.Flags = encoding.UnmarshalFlags16(fb)
	have := binary.LittleEndian.Uint16(data[2:4])
	offset := 4

	a.City, a.Country, a.State = nil, nil, nil
	a.PostalCode, a.StreetName, a.BuildingID = nil, nil, nil

	readLocalized := func(name string) (*encoding.LocalizedStrings, error) {
		var ls encoding.LocalizedStrings
		n, err := ls.Unmarshal(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("address %s: %w", name, err)
		}
		offset += n
		return &ls, nil
	}
	readVec := func(name string) (*[]byte, error) {
		v, n, err := encoding.UnmarshalVec16(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("address %s: %w", name, err)
		}
		offset += n
		return &v, nil
	}

	var err error
	if have&(1<<AddressHaveCity) != 0 {
		if a.City, err = readLocalized("city"); err != nil {
			return offset, err
		}
	}
	if have&(1<<AddressHaveCountry) != 0 {
		if a.Country, err = readLocalized("country"); err != nil {
			return offset, err
		}
	}
	if have&(1<<AddressHaveState) != 0 {
		if a.State, err = readLocalized("state"); err != nil {
			return offset, err
		}
	}
	if have&(1<<AddressHavePostalCode) != 0 {
		if a.PostalCode, err = readVec("postal code"); err != nil {
			return offset, err
		}
	}
	if have&(1<<AddressHaveStreetName) != 0 {
		if a.StreetName, err = readLocalized("street name"); err != nil {
			return offset, err
		}
	}
	if have&(1<<AddressHaveBuildingID) != 0 {
		if a.BuildingID, err = readVec("building id"); err != nil {
			return offset, err
		}
	}

	return offset, nil
}

func (a *Address) marshalBody() ([]byte, []byte, error) {
	data := make([]byte, 0, 4)
	fb := encoding.MarshalFlags16(a.Flags)
	data = append(data, fb[:]...)
	data = binary.LittleEndian.AppendUint16(data, a.Have())

	var aux []byte
	if a.City != nil {
		aux = append(aux, a.City.Marshal()...)
	}
	if a.Country != nil {
		aux = append(aux, a.Country.Marshal()...)
	}
	if a.State != nil {
		aux = append(aux, a.State.Marshal()...)
	}
	if a.PostalCode != nil {
		aux = append(aux, encoding.MarshalVec16(*a.PostalCode)...)
	}
	if a.StreetName != nil {
		aux = append(aux, a.StreetName.Marshal()...)
	}
	if a.BuildingID != nil {
		aux = append(aux, encoding.MarshalVec16(*a.BuildingID)...)
	}
	return data, aux, nil
}

// Contact presence mask bits, in field order.
const (
	ContactHavePhone1 = iota
	ContactHavePhone2
	ContactHaveFax
	ContactHaveEmail
	ContactHaveURL
)

// Contact carries phone, fax, email and web details (type 12) attached to a
// waypoint. Field presence works exactly as in Address.
type Contact struct {
	RecordBase
	Flags  encoding.Flags16 `json:"flags"`
	Phone1 *[]byte          `json:"phone1,omitempty"`
	Phone2 *[]byte          `json:"phone2,omitempty"`
	Fax    *[]byte          `json:"fax,omitempty"`
	Email  *[]byte          `json:"email,omitempty"`
	URL    *[]byte          `json:"url,omitempty"`
}

// Kind returns KindContact.
func (c *Contact) Kind() Kind {
	return KindContact
}

// Have returns the presence mask the fields currently encode to.
func (c *Contact) Have() uint16 {
	var have uint16
	if c.Phone1 != nil {
		have |= 1 << ContactHavePhone1
	}
	if c.Phone2 != nil {
		have |= 1 << ContactHavePhone2
	}
	if c.Fax != nil {
		have |= 1 << ContactHaveFax
	}
	if c.Email != nil {
		have |= 1 << ContactHaveEmail
	}
	if c.URL != nil {
		have |= 1 << ContactHaveURL
	}
	return have
}

func (c *Contact) unmarshalBody(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("contact: body %d bytes, need at least 4", len(data))
	}
	var fb [2]byte
	copy(fb[:], data[0:2])
	c.Flags = encoding.UnmarshalFlags16(fb)
	have := binary.LittleEndian.Uint16(data[2:4])
	offset := 4

	c.Phone1, c.Phone2, c.Fax, c.Email, c.URL = nil, nil, nil, nil, nil

	read := func(name string, bit uint) (*[]byte, error) {
		if have&(1<<bit) == 0 {
			return nil, nil
		}
		v, n, err := encoding.UnmarshalVec16(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("contact %s: %w", name, err)
		}
		offset += n
		return &v, nil
	}

	var err error
	if c.Phone1, err = read("phone1", ContactHavePhone1); err != nil {
		return offset, err
	}
	if c.Phone2, err = read("phone2", ContactHavePhone2); err != nil {
		return offset, err
	}
	if c.Fax, err = read("fax", ContactHaveFax); err != nil {
		return offset, err
	}
	if c.Email, err = read("email", ContactHaveEmail); err != nil {
		return offset, err
	}
	if c.URL, err = read("url", ContactHaveURL); err != nil {
		return offset, err
	}

	return offset, nil
}

func (c *Contact) marshalBody() ([]byte, []byte, error) {
	data := make([]byte, 0, 4)
	fb := encoding.MarshalFlags16(c.Flags)
	data = append(data, fb[:]...)
	data = binary.LittleEndian.AppendUint16(data, c.Have())

	var aux []byte
	for _, field := range []*[]byte{c.Phone1, c.Phone2, c.Fax, c.Email, c.URL} {
		if field != nil {
			aux = append(aux, encoding.MarshalVec16(*field)...)
		}
	}
	return data, aux, nil
}
