package codec

// Record is one persisted blackboard entry: a key, the value last
// published for it, and the generation counter at the time of the
// snapshot.
type Record struct {
	Key        string `json:"key"`
	Generation uint64 `json:"generation"`
	Value      []byte `json:"value,omitempty"`
}

// Codec is the interface for all snapshot record encoders.
type Codec interface {
	// Encode encodes a record into a byte array.
	// It returns the encoded byte array and an error if any.
	Encode(rec Record) ([]byte, error)
	// Decode decodes a byte array into a record.
	// It takes a byte array and a pointer to a record as parameters
	// and returns an error if any.
	Decode(b []byte, rec *Record) error
}
