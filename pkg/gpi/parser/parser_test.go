package parser

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/GravisZro/gpi-kit/pkg/gpi/record"
)

// minimumFile is the smallest well-formed GPI stream: a POI header followed
// by the End sentinel.
var minimumFile = []byte{
	// POIHeader, short header form, 12 bytes of primary data.
	0x01, 0x00,
	0x00, 0x00,
	0x0C, 0x00, 0x00, 0x00,
	'P', 'O', 'I', 0x00, 0x00, 0x00,
	'0', '1',
	0xE9, 0xFD, // codepage = Unicode
	0x00, 0x00, // auxiliary type = none
	// End sentinel.
	0xFF, 0xFF,
	0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

func TestMinimumFile(t *testing.T) {
	records, err := ReadAll(bytes.NewReader(minimumFile), logr.Discard())
	require.NoError(t, err)
	require.Len(t, records, 2)

	hdr, ok := records[0].(*record.POIHeader)
	require.True(t, ok)
	require.Equal(t, record.CodepageUnicode, hdr.Codepage)
	require.Equal(t, "01", hdr.Version)
	require.Equal(t, record.Kind(0), hdr.AuxiliaryType)

	require.Equal(t, record.KindEnd, records[1].Kind())

	// Re-encoding must be bit-identical.
	var out bytes.Buffer
	require.NoError(t, WriteAll(&out, records))
	require.Equal(t, minimumFile, out.Bytes())
}

func TestEndSentinelStopsIteration(t *testing.T) {
	// Bytes after the End record (a trailing index region, here garbage that
	// would not even parse) must never be touched.
	stream := append(append([]byte{}, minimumFile...), 0xDE, 0xAD, 0xBE, 0xEF)

	rs := NewRecords(bytes.NewReader(stream), logr.Discard())
	count := 0
	for rs.Next() {
		count++
	}
	require.NoError(t, rs.Err())
	require.Equal(t, 2, count)
	require.True(t, rs.SawEnd())
	require.Equal(t, int64(len(minimumFile)), rs.Offset())
}

func TestEOFWithoutEnd(t *testing.T) {
	// Only the POI header, no End sentinel: tolerated, but recorded.
	stream := minimumFile[:20]

	rs := NewRecords(bytes.NewReader(stream), logr.Discard())
	require.True(t, rs.Next())
	require.Equal(t, record.KindPOIHeader, rs.Record.Kind())
	require.False(t, rs.Next())
	require.NoError(t, rs.Err())
	require.False(t, rs.SawEnd())
}

func TestUnknownTypeIsFatal(t *testing.T) {
	stream := []byte{
		0x1E, 0x00, // type 30: undocumented
		0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0xAA, 0xBB,
	}
	rs := NewRecords(bytes.NewReader(stream), logr.Discard())
	require.False(t, rs.Next())

	var unknown *record.UnknownRecordTypeError
	require.ErrorAs(t, rs.Err(), &unknown)
	require.Equal(t, uint16(30), unknown.Type)
}

func TestMalformedRecordIsSkipped(t *testing.T) {
	// A Category whose localized name is truncated: the declared region is
	// consumed, a warning is recorded and iteration continues to the End
	// sentinel.
	bad := []byte{
		0x07, 0x00, // type = Category
		0x00, 0x00,
		0x04, 0x00, 0x00, 0x00, // end_of_record = 4
		0x01, 0x00, // category_id
		0xFF, 0x00, // localized prefix cut short
	}
	stream := append(append([]byte{}, bad...), minimumFile...)

	records, err := ReadAll(bytes.NewReader(stream), logr.Discard())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, record.KindPOIHeader, records[0].Kind())
	require.Equal(t, record.KindEnd, records[1].Kind())

	rs := NewRecords(bytes.NewReader(stream), logr.Discard())
	for rs.Next() {
	}
	require.Len(t, rs.Warnings(), 1)
}

func TestTruncatedRecordIsFatal(t *testing.T) {
	// The header promises 12 bytes of primary data but the stream ends.
	stream := minimumFile[:12]
	rs := NewRecords(bytes.NewReader(stream), logr.Discard())
	require.False(t, rs.Next())
	require.Error(t, rs.Err())
}

func TestFullStreamRoundTrip(t *testing.T) {
	// A representative file: the Garmin header with its Record15 child, a
	// POI header, a POI group
	// with a waypoint-bearing area, and the End sentinel.
	garmin := &record.GarminHeader{
		Magic:   "GRMREC",
		Version: "01",
		Created: time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	garmin.Name = []byte("test set")
	garmin.AddChild(&record.Record15{MapID: 1, ProductID: 1})

	poi := &record.POIHeader{Magic: "POI\x00\x00\x00", Version: "01", Codepage: record.CodepageWesternEuropean}

	group := &record.POIGroup{}
	group.Source.Set("en", []byte("demo"))
	area := &record.Area{}
	area.Flags.SetBit(0, true)
	wp := &record.Waypoint{}
	wp.Shortname.Set("en", []byte("Home"))
	wp.AddChild(&record.CategoryReference{CategoryID: 2})
	area.AddChild(wp)
	group.Areas = []*record.Area{area}

	original := []record.Record{garmin, poi, group, &record.End{}}

	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, original))

	decoded, err := ReadAll(bytes.NewReader(buf.Bytes()), logr.Discard())
	require.NoError(t, err)
	require.Len(t, decoded, 4)
	require.Equal(t, record.Record(garmin), decoded[0])
	require.Equal(t, record.Record(poi), decoded[1])
	require.Equal(t, record.Record(group), decoded[2])

	var out bytes.Buffer
	require.NoError(t, WriteAll(&out, decoded))
	require.Equal(t, buf.Bytes(), out.Bytes())
}
