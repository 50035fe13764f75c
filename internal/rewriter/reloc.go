package rewriter

import "github.com/xyproto/mkextmod/internal/elf32"

// decodeAddend extracts the link-time addend encoded in a patched
// instruction word, per the bit layout of the given relocation type. It
// does not know about the symbol the relocation targets; undoRelocation
// combines this with the symbol's value to recover the pre-link addend.
func decodeAddend(relType uint32, insn uint32) (int32, error) {
	switch relType {
	case elf32.R_ARM_ABS32, elf32.R_ARM_TARGET1:
		return int32(insn), nil

	case elf32.R_ARM_PREL31:
		v := insn & 0x7fffffff
		if v&0x40000000 != 0 {
			return int32(v | 0x80000000), nil
		}
		return int32(v), nil

	case elf32.R_ARM_THM_PC22, elf32.R_ARM_THM_JUMP24:
		v := ((insn & 0x7ff) << 11) | ((insn & 0x7ff0000) >> 16)
		var signed int32
		if v&0x200000 != 0 {
			signed = int32(v) - 0x400000
		} else {
			signed = int32(v)
		}
		return signed * 2, nil

	default:
		return 0, &UnsupportedRelocError{RelocType: relType}
	}
}

// undoRelocation recovers the pre-link addend A0 from the already-applied
// relocation: S is the symbol's value, P the relocation's placement
// address, and A the addend decodeAddend extracted from the patched
// instruction.
func undoRelocation(relType uint32, s, p uint32, a int32) (int32, error) {
	switch relType {
	case elf32.R_ARM_ABS32, elf32.R_ARM_TARGET1:
		return a - int32(s), nil

	case elf32.R_ARM_THM_PC22, elf32.R_ARM_THM_JUMP24, elf32.R_ARM_PREL31:
		s &^= 1
		return a - (int32(s) - int32(p)), nil

	default:
		return 0, &UnsupportedRelocError{RelocType: relType}
	}
}
