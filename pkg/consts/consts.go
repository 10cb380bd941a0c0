package consts

const (
	// Magic value opening a GRMREC file header record. Exactly six bytes on
	// the wire, unpadded.
	GPI_GRMREC_MAGIC = "GRMREC"

	// Magic value opening a POI file header record. Six bytes, NUL padded.
	GPI_POI_MAGIC = "POI\x00\x00\x00"

	// Format version strings seen in the wild, stored as two unpadded ASCII
	// bytes immediately after the magic.
	GPI_FORMAT_VERSION_00 = "00"
	GPI_FORMAT_VERSION_01 = "01"

	// Record header sizes. The short form carries type, two flag bytes and
	// end_of_record; the extended form appends end_of_data.
	GPI_HEADER_SIZE          = 8
	GPI_EXTENDED_HEADER_SIZE = 12

	// Seconds between the UNIX epoch (1970-01-01) and the Garmin epoch
	// (1989-12-31 00:00:00 UTC): 7304 days.
	GARMIN_EPOCH_OFFSET = 7304 * 24 * 60 * 60

	// On-wire sentinel for an unset timestamp. Decodes to the Garmin epoch
	// and re-encodes as zero.
	GPI_TIMESTAMP_UNSET = 0xFFFFFFFF

	// Fixed prefix of a Bitmap record body, before the image, palette and
	// mask blobs.
	GPI_BITMAP_STATICS_SIZE = 36

	// End sentinel record type terminating the primary record stream.
	GPI_END_RECORD_TYPE = 0xFFFF
)
