package codec

import "encoding/json"

// NewJSONCodec creates a new codec using json encoding
func NewJSONCodec() Codec {
	return &jsonCodecImpl{}
}

// jsonCodecImpl implements the Codec interface using json encoding
type jsonCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.Codec)
// --------------------------------------------------------------------------

func (j jsonCodecImpl) Encode(rec Record) ([]byte, error) {
	return json.Marshal(rec)
}

func (j jsonCodecImpl) Decode(b []byte, rec *Record) error {
	return json.Unmarshal(b, rec)
}
