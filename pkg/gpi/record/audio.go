package record

import (
	"encoding/binary"
	"fmt"

	"github.com/GravisZro/gpi-kit/pkg/gpi/encoding"
)

// AudioFile is an embedded alert sound (type 18). The three static bytes are
// primary data; the localized audio blobs fill the record's auxiliary region,
// which is why the child walker skips this kind.
type AudioFile struct {
	RecordBase
	AudioID   uint16                  `json:"audio_id"`
	Format    AudioFormat             `json:"format"`
	AudioData encoding.LocalizedBlobs `json:"audio_data"`
}

// Kind returns KindAudioFile.
func (a *AudioFile) Kind() Kind {
	return KindAudioFile
}

func (a *AudioFile) unmarshalBody(data []byte) (int, error) {
	if len(data) < 3 {
		return 0, fmt.Errorf("audio file: body %d bytes, need at least 3", len(data))
	}
	a.AudioID = binary.LittleEndian.Uint16(data[0:2])
	a.Format = AudioFormat(data[2])
	a.AudioData = encoding.LocalizedBlobs{}
	if len(data) == 3 {
		return 3, nil
	}
	n, err := a.AudioData.Unmarshal(data[3:])
	if err != nil {
		return 3, fmt.Errorf("audio data: %w", err)
	}
	return 3 + n, nil
}

func (a *AudioFile) marshalBody() ([]byte, []byte, error) {
	data := make([]byte, 0, 3)
	data = binary.LittleEndian.AppendUint16(data, a.AudioID)
	data = append(data, byte(a.Format))

	var aux []byte
	if a.AudioData.Len() > 0 {
		aux = a.AudioData.Marshal()
	}
	return data, aux, nil
}
