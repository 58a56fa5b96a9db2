package codec

import (
	"encoding/binary"
	"fmt"
)

// NewBinaryCodec creates a new codec using a custom binary format
// optimized for speed and efficiency
func NewBinaryCodec() Codec {
	return &binaryCodecImpl{}
}

// binaryCodecImpl implements Codec using a custom binary format
type binaryCodecImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasKey        byte = 1 << 0
	hasGeneration byte = 1 << 1
	hasValue      byte = 1 << 2
)

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.Codec)
// --------------------------------------------------------------------------

func (c binaryCodecImpl) Encode(rec Record) ([]byte, error) {
	// Calculate total size needed
	totalSize := c.sizeBytes(rec)
	result := make([]byte, totalSize)

	// Initialize flags byte
	var flags byte = 0

	// Set position for writing (start after the flags byte)
	pos := 1

	// Handle Key
	if rec.Key != "" {
		flags |= hasKey
		keyBytes := []byte(rec.Key)
		keyLen := len(keyBytes)

		// Write key length
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(keyLen))
		pos += 4

		// Write key data
		copy(result[pos:pos+keyLen], keyBytes)
		pos += keyLen
	}

	// Handle Generation
	if rec.Generation > 0 {
		flags |= hasGeneration
		binary.BigEndian.PutUint64(result[pos:pos+8], rec.Generation)
		pos += 8
	}

	// Handle Value
	if rec.Value != nil {
		flags |= hasValue
		valueLen := len(rec.Value)

		// Write value length
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(valueLen))
		pos += 4

		// Write value data
		if valueLen > 0 {
			copy(result[pos:pos+valueLen], rec.Value)
			pos += valueLen
		}
	}

	// Set flags byte after knowing which fields are present
	result[0] = flags

	return result, nil
}

func (c binaryCodecImpl) Decode(data []byte, rec *Record) error {
	// Check minimum size (flags byte)
	if len(data) < 1 {
		return fmt.Errorf("data too short for record header")
	}

	// Read flags
	flags := data[0]

	// Initialize read position
	pos := 1

	// Read Key if present
	if flags&hasKey != 0 {
		if pos+4 > len(data) {
			return fmt.Errorf("data too short for key length")
		}

		// Read key length
		keyLen := binary.BigEndian.Uint32(data[pos : pos+4])
		pos += 4

		if pos+int(keyLen) > len(data) {
			return fmt.Errorf("data too short for key data")
		}

		// Read key data
		rec.Key = string(data[pos : pos+int(keyLen)])
		pos += int(keyLen)
	} else {
		rec.Key = ""
	}

	// Read Generation if present
	if flags&hasGeneration != 0 {
		if pos+8 > len(data) {
			return fmt.Errorf("data too short for generation")
		}

		rec.Generation = binary.BigEndian.Uint64(data[pos : pos+8])
		pos += 8
	} else {
		rec.Generation = 0
	}

	// Read Value if present
	if flags&hasValue != 0 {
		if pos+4 > len(data) {
			return fmt.Errorf("data too short for value length")
		}

		// Read value length
		valueLen := binary.BigEndian.Uint32(data[pos : pos+4])
		pos += 4

		if pos+int(valueLen) > len(data) {
			return fmt.Errorf("data too short for value data")
		}

		// Read value data - reuse the destination buffer if it is large enough
		if rec.Value == nil || cap(rec.Value) < int(valueLen) {
			rec.Value = make([]byte, valueLen)
		} else {
			rec.Value = rec.Value[:valueLen]
		}

		if valueLen > 0 {
			copy(rec.Value, data[pos:pos+int(valueLen)])
		}
		pos += int(valueLen)
	} else {
		rec.Value = nil
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sizeBytes calculates the total size needed for encoding
func (c binaryCodecImpl) sizeBytes(rec Record) int {
	// 1 byte for flags
	size := 1

	// Add sizes for fields that require length encoding
	if rec.Key != "" {
		size += 4 + len(rec.Key) // 4 bytes for length + key string
	}
	if rec.Generation > 0 {
		size += 8 // uint64
	}
	if rec.Value != nil {
		size += 4 + len(rec.Value) // 4 bytes for length + value bytes
	}

	return size
}
