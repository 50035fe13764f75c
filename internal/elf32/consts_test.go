package elf32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHTNameKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "PROGBITS", SHTName(SHT_PROGBITS))
	assert.Equal(t, "ARM_ATTRIBUTES", SHTName(SHT_ARM_ATTRIBUTES))
	assert.Equal(t, "1879048345", SHTName(0x70000099))
}

func TestSTTNameKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "FUNC", STTName(STT_FUNC))
	assert.Equal(t, "99", STTName(99))
}

func TestSTBAndSTVNames(t *testing.T) {
	assert.Equal(t, "GLOBAL", STBName(STB_GLOBAL))
	assert.Equal(t, "HIDDEN", STVName(STV_HIDDEN))
}

func TestPTName(t *testing.T) {
	assert.Equal(t, "DYNAMIC", PTName(PT_DYNAMIC))
	assert.Equal(t, "LOAD", PTName(PT_LOAD))
}

func TestRArmNameKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "ABS32", RArmName(R_ARM_ABS32))
	assert.Equal(t, "THM_JUMP24", RArmName(R_ARM_THM_JUMP24))
	assert.Equal(t, "999", RArmName(999))
}

func TestSupportedRelocsSet(t *testing.T) {
	for _, r := range []uint32{R_ARM_ABS32, R_ARM_TARGET1, R_ARM_PREL31, R_ARM_THM_PC22, R_ARM_THM_JUMP24} {
		assert.True(t, SupportedRelocs[r], "expected %s to be supported", RArmName(r))
	}
	assert.False(t, SupportedRelocs[R_ARM_CALL])
}

func TestDecimalZero(t *testing.T) {
	assert.Equal(t, "0", decimal(0))
}
