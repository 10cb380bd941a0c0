package encoding

import (
	"encoding/binary"
	"fmt"
)

// LocalizedEntry is a single language-tagged value inside a localized map.
// The tag is two literal ASCII bytes (e.g. "en") preserved exactly as read.
type LocalizedEntry struct {
	Lang  [2]byte `json:"lang"`
	Value []byte  `json:"value"`
}

// LocalizedStrings maps 2-byte language tags to 16-bit length-prefixed byte
// strings. Iteration order is insertion order; the decoder never reorders
// entries, so a decoded map re-encodes in the original wire order.
type LocalizedStrings struct {
	entries []LocalizedEntry
}

// Set appends or replaces the value for a language tag. Tags longer than two
// bytes are truncated; shorter tags are NUL padded.
func (l *LocalizedStrings) Set(lang string, value []byte) {
	var tag [2]byte
	copy(tag[:], lang)
	for i := range l.entries {
		if l.entries[i].Lang == tag {
			l.entries[i].Value = value
			return
		}
	}
	l.entries = append(l.entries, LocalizedEntry{Lang: tag, Value: value})
}

// Get returns the value for a language tag and whether it was present.
func (l *LocalizedStrings) Get(lang string) ([]byte, bool) {
	var tag [2]byte
	copy(tag[:], lang)
	for i := range l.entries {
		if l.entries[i].Lang == tag {
			return l.entries[i].Value, true
		}
	}
	return nil, false
}

// Len returns the number of entries.
func (l *LocalizedStrings) Len() int {
	return len(l.entries)
}

// Entries returns the entries in insertion order.
func (l *LocalizedStrings) Entries() []LocalizedEntry {
	return l.entries
}

// ByteCount returns the wire size: the 4-byte total prefix plus, per entry,
// the 2-byte tag and the length-prefixed value.
func (l *LocalizedStrings) ByteCount() int {
	total := 4
	for i := range l.entries {
		total += 2 + Vec16ByteCount(l.entries[i].Value)
	}
	return total
}

// Marshal emits the 32-bit little-endian total followed by each (tag, value)
// pair in insertion order.
func (l *LocalizedStrings) Marshal() []byte {
	buf := make([]byte, 4, l.ByteCount())
	binary.LittleEndian.PutUint32(buf[0:4], uint32(l.ByteCount()-4))
	for i := range l.entries {
		buf = append(buf, l.entries[i].Lang[0], l.entries[i].Lang[1])
		buf = append(buf, MarshalVec16(l.entries[i].Value)...)
	}
	return buf
}

// Unmarshal decodes a localized map from the front of data and returns the
// number of bytes consumed. Consuming more bytes than the total prefix
// declared is a decode error.
func (l *LocalizedStrings) Unmarshal(data []byte) (int, error) {
	l.entries = nil
	if len(data) < 4 {
		return 0, fmt.Errorf("localized: %d bytes left for total prefix", len(data))
	}
	total := int(binary.LittleEndian.Uint32(data[0:4]))
	if len(data) < 4+total {
		return 0, fmt.Errorf("localized: declared %d bytes, %d available", total, len(data)-4)
	}
	offset := 4
	remaining := total
	for remaining > 0 {
		if remaining < 2 {
			return 0, ErrLocalizedOvershoot
		}
		var entry LocalizedEntry
		entry.Lang[0] = data[offset]
		entry.Lang[1] = data[offset+1]
		offset += 2
		value, n, err := UnmarshalVec16(data[offset:])
		if err != nil {
			return 0, fmt.Errorf("localized %q: %w", entry.Lang[:], err)
		}
		entry.Value = value
		offset += n
		remaining -= 2 + n
		if remaining < 0 {
			return 0, ErrLocalizedOvershoot
		}
		l.entries = append(l.entries, entry)
	}
	return offset, nil
}

// LocalizedBlobs maps 2-byte language tags to 32-bit length-prefixed byte
// blobs. Used by audio records, whose per-language payloads exceed the 16-bit
// prefix. Iteration order is insertion order.
type LocalizedBlobs struct {
	entries []LocalizedEntry
}

// Set appends or replaces the blob for a language tag.
func (l *LocalizedBlobs) Set(lang string, value []byte) {
	var tag [2]byte
	copy(tag[:], lang)
	for i := range l.entries {
		if l.entries[i].Lang == tag {
			l.entries[i].Value = value
			return
		}
	}
	l.entries = append(l.entries, LocalizedEntry{Lang: tag, Value: value})
}

// Get returns the blob for a language tag and whether it was present.
func (l *LocalizedBlobs) Get(lang string) ([]byte, bool) {
	var tag [2]byte
	copy(tag[:], lang)
	for i := range l.entries {
		if l.entries[i].Lang == tag {
			return l.entries[i].Value, true
		}
	}
	return nil, false
}

// Len returns the number of entries.
func (l *LocalizedBlobs) Len() int {
	return len(l.entries)
}

// Entries returns the entries in insertion order.
func (l *LocalizedBlobs) Entries() []LocalizedEntry {
	return l.entries
}

// ByteCount returns the wire size: the 4-byte total prefix plus, per entry,
// the 2-byte tag and the 32-bit length-prefixed blob.
func (l *LocalizedBlobs) ByteCount() int {
	total := 4
	for i := range l.entries {
		total += 2 + Vec32ByteCount(l.entries[i].Value)
	}
	return total
}

// Marshal emits the 32-bit little-endian total followed by each (tag, blob)
// pair in insertion order.
func (l *LocalizedBlobs) Marshal() []byte {
	buf := make([]byte, 4, l.ByteCount())
	binary.LittleEndian.PutUint32(buf[0:4], uint32(l.ByteCount()-4))
	for i := range l.entries {
		buf = append(buf, l.entries[i].Lang[0], l.entries[i].Lang[1])
		buf = append(buf, MarshalVec32(l.entries[i].Value)...)
	}
	return buf
}

// Unmarshal decodes a localized blob map from the front of data and returns
// the number of bytes consumed.
func (l *LocalizedBlobs) Unmarshal(data []byte) (int, error) {
	l.entries = nil
	if len(data) < 4 {
		return 0, fmt.Errorf("localized: %d bytes left for total prefix", len(data))
	}
	total := int(binary.LittleEndian.Uint32(data[0:4]))
	if len(data) < 4+total {
		return 0, fmt.Errorf("localized: declared %d bytes, %d available", total, len(data)-4)
	}
	offset := 4
	remaining := total
	for remaining > 0 {
		if remaining < 2 {
			return 0, ErrLocalizedOvershoot
		}
		var entry LocalizedEntry
		entry.Lang[0] = data[offset]
		entry.Lang[1] = data[offset+1]
		offset += 2
		value, n, err := UnmarshalVec32(data[offset:])
		if err != nil {
			return 0, fmt.Errorf("localized %q: %w", entry.Lang[:], err)
		}
		entry.Value = value
		offset += n
		remaining -= 2 + n
		if remaining < 0 {
			return 0, ErrLocalizedOvershoot
		}
		l.entries = append(l.entries, entry)
	}
	return offset, nil
}
