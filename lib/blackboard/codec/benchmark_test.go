package codec

import "testing"

// benchmarkRecords returns a set of records for targeted benchmarking
func benchmarkRecords() map[string]Record {
	return map[string]Record{
		"Empty": {},
		"KeyOnly": {
			Key: "vehicle-pose",
		},
		"SmallValue": {
			Key:        "heartbeat",
			Generation: 12,
			Value:      []byte("ok"),
		},
		"MediumValue": {
			Key:        "vehicle-pose",
			Generation: 48213,
			Value:      []byte("medium length value for codec benchmarking"),
		},
		"LargeValue": {
			Key:        "camera-frame",
			Generation: 993211,
			Value:      make([]byte, 1024*16), // 16KB of data
		},
	}
}

// BenchmarkEncode benchmarks encoding for all codecs and record shapes
func BenchmarkEncode(b *testing.B) {
	for codecName, factory := range testCodecs {
		codec := factory()
		for recName, rec := range benchmarkRecords() {
			b.Run(codecName+"/"+recName, func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := codec.Encode(rec); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkDecode benchmarks decoding for all codecs and record shapes
func BenchmarkDecode(b *testing.B) {
	for codecName, factory := range testCodecs {
		codec := factory()
		for recName, rec := range benchmarkRecords() {
			data, err := codec.Encode(rec)
			if err != nil {
				b.Fatal(err)
			}
			b.Run(codecName+"/"+recName, func(b *testing.B) {
				b.ReportAllocs()
				var out Record
				for i := 0; i < b.N; i++ {
					if err := codec.Decode(data, &out); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
