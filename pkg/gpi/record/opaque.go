package record

// End is the stream terminator (type 0xFFFF): a bare header with zero
// lengths and no body.
type End struct {
	RecordBase
}

// Kind returns KindEnd.
func (e *End) Kind() Kind {
	return KindEnd
}

func (e *End) marshalBody() ([]byte, []byte, error) {
	return nil, nil, nil
}

// Opaque is the pass-through form for record kinds the codec does not
// interpret (SpeedCamera, Record20, Index, Record22..27). The raw primary
// and auxiliary bytes are retained verbatim and re-emitted on encode, so a
// decode/encode cycle preserves them bit for bit.
type Opaque struct {
	RecordBase
	OpaqueKind Kind   `json:"kind"`
	Data       []byte `json:"data"`
	Aux        []byte `json:"aux,omitempty"`
}

// Kind returns the pass-through record's wire type.
func (o *Opaque) Kind() Kind {
	return o.OpaqueKind
}

func (o *Opaque) marshalBody() ([]byte, []byte, error) {
	return o.Data, o.Aux, nil
}
