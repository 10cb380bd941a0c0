package testing

import (
	"bytes"
	"fmt"
	"os"

	gpi "github.com/GravisZro/gpi-kit"
)

// ValidateRoundTrip decodes a GPI file, re-encodes it and compares the
// result byte for byte against the original. Records the codec interprets
// must survive the cycle exactly; a mismatch is reported with the first
// differing offset.
func ValidateRoundTrip(location string) error {
	original, err := os.ReadFile(location)
	if err != nil {
		return err
	}

	file, err := gpi.Decode(bytes.NewReader(original))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	encoded, err := file.Bytes()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if len(encoded) != len(original) {
		return fmt.Errorf("re-encode produced %d bytes, original has %d",
			len(encoded), len(original))
	}
	for i := range encoded {
		if encoded[i] != original[i] {
			return fmt.Errorf("re-encode differs from original at offset %d: 0x%02X != 0x%02X",
				i, encoded[i], original[i])
		}
	}
	return nil
}
