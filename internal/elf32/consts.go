package elf32

// SHN: special section indices.
const (
	SHN_UNDEF     = 0
	SHN_LORESERVE = 0xff00
	SHN_LOPROC    = 0xff00
	SHN_HIPROC    = 0xff1f
	SHN_LOOS      = 0xff20
	SHN_HIOS      = 0xff3f
	SHN_ABS       = 0xfff1
	SHN_COMMON    = 0xfff2
	SHN_HIRESERVE = 0xffff
)

// SHT: section types (sh_type).
const (
	SHT_NULL          = 0
	SHT_PROGBITS      = 1
	SHT_SYMTAB        = 2
	SHT_STRTAB        = 3
	SHT_RELA          = 4
	SHT_HASH          = 5
	SHT_DYNAMIC       = 6
	SHT_NOTE          = 7
	SHT_NOBITS        = 8
	SHT_REL           = 9
	SHT_SHLIB         = 10
	SHT_DYNSYM        = 11
	SHT_INIT_ARRAY    = 14
	SHT_FINI_ARRAY    = 15
	SHT_PREINIT_ARRAY = 16
	SHT_GROUP         = 17
	SHT_SYMTAB_SHNDX  = 18
	SHT_LOPROC        = 0x70000000
	SHT_HIPROC        = 0x7fffffff
	SHT_ARM_EXIDX       = SHT_LOPROC + 1
	SHT_ARM_PREEMPTMAP  = SHT_LOPROC + 2
	SHT_ARM_ATTRIBUTES  = SHT_LOPROC + 3
)

// SHF: section flags (sh_flags), a bitmask.
const (
	SHF_WRITE     = 1 << 0
	SHF_ALLOC     = 1 << 1
	SHF_EXECINSTR = 1 << 2
	SHF_MERGE     = 1 << 4
	SHF_STRINGS   = 1 << 5
	SHF_INFO_LINK = 1 << 6
)

// STB: symbol binding (ST_BIND subfield of st_info).
const (
	STB_LOCAL  = 0
	STB_GLOBAL = 1
	STB_WEAK   = 2
)

// STT: symbol type (ST_TYPE subfield of st_info).
const (
	STT_NOTYPE  = 0
	STT_OBJECT  = 1
	STT_FUNC    = 2
	STT_SECTION = 3
	STT_FILE    = 4
	STT_COMMON  = 5
	STT_TLS     = 6
)

// STV: symbol visibility (st_other).
const (
	STV_DEFAULT   = 0
	STV_INTERNAL  = 1
	STV_HIDDEN    = 2
	STV_PROTECTED = 3
)

// STN_UNDEF marks the end of a hash chain / an undefined symbol index.
const STN_UNDEF = 0

// PT: segment types (p_type).
const (
	PT_NULL     = 0
	PT_LOAD     = 1
	PT_DYNAMIC  = 2
	PT_INTERP   = 3
	PT_NOTE     = 4
	PT_SHLIB    = 5
	PT_PHDR     = 6
	PT_TLS      = 7
	PT_LOOS     = 0x60000000
	PT_HIOS     = 0x6fffffff
	PT_LOPROC   = 0x70000000
	PT_HIPROC   = 0x7fffffff
	PT_ARM_EXIDX = PT_LOPROC + 1
)

// PF: segment flags (p_flags), a bitmask.
const (
	PF_X = 1 << 0
	PF_W = 1 << 1
	PF_R = 1 << 2
)

// DT: dynamic entry tags (d_tag).
const (
	DT_NULL     = 0
	DT_NEEDED   = 1
	DT_PLTRELSZ = 2
	DT_PLTGOT   = 3
	DT_HASH     = 4
	DT_STRTAB   = 5
	DT_SYMTAB   = 6
	DT_RELA     = 7
	DT_RELASZ   = 8
	DT_RELAENT  = 9
	DT_STRSZ    = 10
	DT_SYMENT   = 11
	DT_INIT     = 12
	DT_FINI     = 13
	DT_SONAME   = 14
	DT_RPATH    = 15
	DT_SYMBOLIC = 16
	DT_REL      = 17
	DT_RELSZ    = 18
	DT_RELENT   = 19
	DT_PLTREL   = 20
	DT_DEBUG    = 21
	DT_TEXTREL  = 22
	DT_JMPREL   = 23
	DT_BIND_NOW = 24
	DT_FLAGS    = 30
)

// DF: values of d_un.d_val in the DT_FLAGS entry.
const (
	DF_ORIGIN     = 0x1
	DF_SYMBOLIC   = 0x2
	DF_TEXTREL    = 0x4
	DF_BIND_NOW   = 0x8
	DF_STATIC_TLS = 0x10
)

var shtNames = map[uint32]string{
	SHT_NULL: "NULL", SHT_PROGBITS: "PROGBITS", SHT_SYMTAB: "SYMTAB",
	SHT_STRTAB: "STRTAB", SHT_RELA: "RELA", SHT_HASH: "HASH",
	SHT_DYNAMIC: "DYNAMIC", SHT_NOTE: "NOTE", SHT_NOBITS: "NOBITS",
	SHT_REL: "REL", SHT_DYNSYM: "DYNSYM", SHT_ARM_ATTRIBUTES: "ARM_ATTRIBUTES",
}

// SHTName renders a section type the way the original tool's e2s() helper
// rendered enum values in its diagnostic dump: the bare enum member name, or
// the decimal value if unrecognized.
func SHTName(t uint32) string {
	if name, ok := shtNames[t]; ok {
		return name
	}
	return decimal(t)
}

var sttNames = map[uint8]string{
	STT_NOTYPE: "NOTYPE", STT_OBJECT: "OBJECT", STT_FUNC: "FUNC",
	STT_SECTION: "SECTION", STT_FILE: "FILE", STT_COMMON: "COMMON", STT_TLS: "TLS",
}

func STTName(t uint8) string {
	if name, ok := sttNames[t]; ok {
		return name
	}
	return decimal(uint32(t))
}

var stbNames = map[uint8]string{
	STB_LOCAL: "LOCAL", STB_GLOBAL: "GLOBAL", STB_WEAK: "WEAK",
}

func STBName(t uint8) string {
	if name, ok := stbNames[t]; ok {
		return name
	}
	return decimal(uint32(t))
}

var stvNames = map[uint8]string{
	STV_DEFAULT: "DEFAULT", STV_INTERNAL: "INTERNAL", STV_HIDDEN: "HIDDEN", STV_PROTECTED: "PROTECTED",
}

func STVName(t uint8) string {
	if name, ok := stvNames[t]; ok {
		return name
	}
	return decimal(uint32(t))
}

var ptNames = map[uint32]string{
	PT_NULL: "NULL", PT_LOAD: "LOAD", PT_DYNAMIC: "DYNAMIC", PT_INTERP: "INTERP",
	PT_NOTE: "NOTE", PT_PHDR: "PHDR", PT_TLS: "TLS", PT_LOOS: "LOOS",
}

func PTName(t uint32) string {
	if name, ok := ptNames[t]; ok {
		return name
	}
	return decimal(t)
}

func decimal(v uint32) string {
	if v == 0 {
		return "0"
	}
	digits := [10]byte{}
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return string(digits[i:])
}
