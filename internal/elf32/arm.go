package elf32

// R_ARM: relocation types carried in the low byte of Rel/Rela.Info.
//
// Only a handful of these are ever decoded or emitted by the rewriter (see
// internal/rewriter); the rest of the enumeration is carried for fidelity
// with object files that may reference them in symbol/section metadata the
// rewriter passes through untouched, and so error messages naming an
// unsupported relocation type can print its real name.
const (
	R_ARM_NONE        = 0
	R_ARM_PC24        = 1
	R_ARM_ABS32       = 2
	R_ARM_REL32       = 3
	R_ARM_LDR_PC_G0   = 4
	R_ARM_ABS16       = 5
	R_ARM_ABS12       = 6
	R_ARM_THM_ABS5    = 7
	R_ARM_ABS8        = 8
	R_ARM_SBREL32     = 9
	R_ARM_THM_CALL    = 10
	R_ARM_THM_PC8     = 11
	R_ARM_BREL_ADJ    = 12
	R_ARM_TLS_DESC    = 13
	R_ARM_THM_SWI8    = 14
	R_ARM_XPC25       = 15
	R_ARM_THM_XPC22   = 16
	R_ARM_TLS_DTPMOD32 = 17
	R_ARM_TLS_DTPOFF32 = 18
	R_ARM_TLS_TPOFF32  = 19
	R_ARM_COPY        = 20
	R_ARM_GLOB_DAT    = 21
	R_ARM_JUMP_SLOT   = 22
	R_ARM_RELATIVE    = 23
	R_ARM_GOTOFF32    = 24
	R_ARM_BASE_PREL   = 25
	R_ARM_GOT_BREL    = 26
	R_ARM_PLT32       = 27
	R_ARM_CALL        = 28
	R_ARM_JUMP24      = 29
	R_ARM_THM_JUMP24  = 30
	R_ARM_BASE_ABS    = 31
	R_ARM_TARGET1     = 38
	R_ARM_V4BX        = 40
	R_ARM_TARGET2     = 41
	R_ARM_PREL31      = 42
	R_ARM_MOVW_ABS_NC = 43
	R_ARM_MOVT_ABS    = 44
	R_ARM_THM_MOVW_ABS_NC = 47
	R_ARM_THM_MOVT_ABS    = 48
	R_ARM_THM_JUMP19  = 51
	R_ARM_THM_JUMP11  = 52
	R_ARM_THM_JUMP8   = 53
	R_ARM_THM_PC22    = 102
)

var rArmNames = map[uint32]string{
	R_ARM_NONE: "NONE", R_ARM_PC24: "PC24", R_ARM_ABS32: "ABS32",
	R_ARM_REL32: "REL32", R_ARM_ABS16: "ABS16", R_ARM_ABS12: "ABS12",
	R_ARM_ABS8: "ABS8", R_ARM_SBREL32: "SBREL32", R_ARM_THM_CALL: "THM_CALL",
	R_ARM_THM_PC8: "THM_PC8", R_ARM_COPY: "COPY", R_ARM_GLOB_DAT: "GLOB_DAT",
	R_ARM_JUMP_SLOT: "JUMP_SLOT", R_ARM_RELATIVE: "RELATIVE",
	R_ARM_GOTOFF32: "GOTOFF32", R_ARM_BASE_PREL: "BASE_PREL",
	R_ARM_GOT_BREL: "GOT_BREL", R_ARM_PLT32: "PLT32", R_ARM_CALL: "CALL",
	R_ARM_JUMP24: "JUMP24", R_ARM_THM_JUMP24: "THM_JUMP24",
	R_ARM_BASE_ABS: "BASE_ABS", R_ARM_TARGET1: "TARGET1", R_ARM_V4BX: "V4BX",
	R_ARM_TARGET2: "TARGET2", R_ARM_PREL31: "PREL31",
	R_ARM_MOVW_ABS_NC: "MOVW_ABS_NC", R_ARM_MOVT_ABS: "MOVT_ABS",
	R_ARM_THM_MOVW_ABS_NC: "THM_MOVW_ABS_NC", R_ARM_THM_MOVT_ABS: "THM_MOVT_ABS",
	R_ARM_THM_JUMP19: "THM_JUMP19", R_ARM_THM_JUMP11: "THM_JUMP11",
	R_ARM_THM_JUMP8: "THM_JUMP8", R_ARM_THM_PC22: "THM_PC22",
}

// RArmName renders a relocation type the way the original tool's e2s()
// helper rendered R_ARM enum members: the bare name, or the decimal value
// for anything outside the named set.
func RArmName(t uint32) string {
	if name, ok := rArmNames[t]; ok {
		return name
	}
	return decimal(t)
}

// SupportedRelocs is the set of relocation types the rewriter's
// decode-addend / undo-relocation / conversion logic actually understands.
// Anything else encountered in an input .rel section is reported via
// ErrUnsupportedReloc rather than silently mishandled.
var SupportedRelocs = map[uint32]bool{
	R_ARM_ABS32:      true,
	R_ARM_TARGET1:    true,
	R_ARM_PREL31:     true,
	R_ARM_THM_PC22:   true,
	R_ARM_THM_JUMP24: true,
}
