package codec

import (
	"reflect"
	"testing"
)

// testCodecs is a map of codec name to factory function
var testCodecs = map[string]func() Codec{
	"JSON":   NewJSONCodec,
	"GOB":    NewGOBCodec,
	"Binary": NewBinaryCodec,
}

// testRecords creates a set of test records with different fields filled
func testRecords() []Record {
	return []Record{
		// Empty record
		{},

		// Key only (a subscribed but never published entry)
		{Key: "sensor-status"},

		// Full record
		{
			Key:        "vehicle-pose",
			Generation: 42,
			Value:      []byte("x=1.0 y=2.0 yaw=0.5"),
		},

		// Empty but non-nil value
		{
			Key:        "heartbeat",
			Generation: 7,
			Value:      []byte{},
		},

		// Large value
		{
			Key:        "camera-frame",
			Generation: 100000,
			Value:      make([]byte, 4096),
		},
	}
}

// TestCodecRoundTrip tests that records survive an encode/decode cycle
func TestCodecRoundTrip(t *testing.T) {
	records := testRecords()

	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			codec := factory()

			for i, rec := range records {
				data, err := codec.Encode(rec)
				if err != nil {
					t.Errorf("Failed to encode record %d: %v", i, err)
					continue
				}

				var result Record
				err = codec.Decode(data, &result)
				if err != nil {
					t.Errorf("Failed to decode record %d: %v", i, err)
					continue
				}

				// Empty and nil values are equivalent on the wire.
				if len(rec.Value) == 0 {
					rec.Value = nil
				}
				if len(result.Value) == 0 {
					result.Value = nil
				}

				if !reflect.DeepEqual(rec, result) {
					t.Errorf("Record %d did not survive the round trip: got %+v, want %+v", i, result, rec)
				}
			}
		})
	}
}

// TestBinaryDecodeTruncated tests that the binary codec rejects truncated input
func TestBinaryDecodeTruncated(t *testing.T) {
	codec := NewBinaryCodec()

	data, err := codec.Encode(Record{Key: "key", Generation: 1, Value: []byte("value")})
	if err != nil {
		t.Fatal(err)
	}

	var rec Record
	if err := codec.Decode(nil, &rec); err == nil {
		t.Error("decoding empty input should fail")
	}
	for cut := 1; cut < len(data); cut++ {
		if err := codec.Decode(data[:cut], &rec); err == nil {
			t.Errorf("decoding input truncated to %d bytes should fail", cut)
		}
	}
}
