package model

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildArmAttributes(cpuName string) []byte {
	// Tag_CPU_name sub-tag: 1 byte tag + NUL-terminated name.
	cpuTag := append([]byte{5}, append([]byte(cpuName), 0)...)
	// File-scope subsection: 4-byte size (self-inclusive) + contents.
	fileSub := make([]byte, 4)
	binary.LittleEndian.PutUint32(fileSub, uint32(4+len(cpuTag)))
	fileSub = append(fileSub, cpuTag...)
	fileScope := append([]byte{1}, fileSub...)

	vendor := append([]byte("aeabi"), 0)
	section := make([]byte, 4)
	binary.LittleEndian.PutUint32(section, uint32(4+len(vendor)+len(fileScope)))
	section = append(section, vendor...)
	section = append(section, fileScope...)

	return append([]byte{0x41}, section...)
}

func TestParseArmAttributesHappyPath(t *testing.T) {
	data := buildArmAttributes("Cortex-M4")
	tags := parseArmAttributes(data)
	assert.Equal(t, "Cortex-M4", tags["CPU_name"])
}

func TestParseArmAttributesMalformedInputs(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong format byte", []byte{0x42, 0, 0, 0, 0}},
		{"truncated after format byte", []byte{0x41, 1, 2}},
		{"wrong vendor string", func() []byte {
			vendor := append([]byte("nonsense"), 0)
			section := make([]byte, 4)
			binary.LittleEndian.PutUint32(section, uint32(4+len(vendor)))
			section = append(section, vendor...)
			return append([]byte{0x41}, section...)
		}()},
		{"non-file scope tag", func() []byte {
			vendor := append([]byte("aeabi"), 0)
			badScope := []byte{2, 0, 0, 0, 0} // scope tag 2, not Tag_File(1)
			section := make([]byte, 4)
			binary.LittleEndian.PutUint32(section, uint32(4+len(vendor)+len(badScope)))
			section = append(section, vendor...)
			section = append(section, badScope...)
			return append([]byte{0x41}, section...)
		}()},
		{"wrong CPU-name tag byte", func() []byte {
			data := buildArmAttributes("Cortex-M4")
			// 0x41, size(4), "aeabi\0"(6), scope(1), size(4), then the tag.
			data[16] = 6
			return data
		}()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				tags := parseArmAttributes(tc.data)
				assert.Empty(t, tags)
			})
		})
	}
}
