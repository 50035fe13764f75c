package model

import "github.com/xyproto/mkextmod/internal/elf32"

// Section is implemented by every section variant (and the two pseudo-
// sections for the file header and program header table). Passes type-
// switch on the concrete variant when they need variant-specific behavior,
// falling back to the fields on SectionBase otherwise — the Go equivalent of
// the original's method-resolution-order visitor walk.
type Section interface {
	Node
	Base() *SectionBase
}

// SectionBase carries the fields every section variant shares: the on-disk
// header, its resolved name, its link/info cross-references (already-
// dereferenced pointers rather than indices), byte contents for sections
// that are not entry tables, and the addresses/offset the layout passes
// compute.
type SectionBase struct {
	NodeBase
	Shdr  elf32.Shdr
	Name  string
	Link  Section
	Info  Section
	Data  []byte
	Index int

	// Paddr is set by ComputeAddresses for allocated sections; HasPaddr
	// distinguishes "computed to zero" from "not yet computed" the way the
	// original's hasattr(section, "paddr") check does.
	Paddr    uint32
	HasPaddr bool
}

func (s *SectionBase) Base() *SectionBase { return s }

// Size mirrors the original's Section.size property: the length of decoded
// byte content if present, falling back to the on-disk sh_size otherwise
// (entry-table sections define their own Size, entry count times entry size).
func (s *SectionBase) Size() uint32 {
	if s.Data != nil {
		return uint32(len(s.Data))
	}
	return s.Shdr.Size
}

// PSize is the file-image size: zero for SHT_NOBITS sections, Size()
// otherwise.
func (s *SectionBase) PSize() uint32 {
	if s.Shdr.Type == elf32.SHT_NOBITS {
		return 0
	}
	return s.Size()
}

// PlainSection is a section with no entry table and no special loader
// behavior: SHT_PROGBITS, SHT_NOBITS, SHT_NOTE, and anything else not named
// by one of the other variants.
type PlainSection struct{ SectionBase }

// EhdrSection is the pseudo-section standing in for the ELF file header
// itself, so the layout passes can place it like any other allocated
// section instead of special-casing offset 0 everywhere.
type EhdrSection struct{ SectionBase }

// PhdrsSection is the pseudo-section standing in for the program header
// table.
type PhdrsSection struct{ SectionBase }

// SymtabSection backs both SHT_SYMTAB and SHT_DYNSYM.
type SymtabSection struct {
	SectionBase
	Symbols []*Symbol
}

func (s *SymtabSection) Size() uint32 { return uint32(len(s.Symbols)) * elf32.SymSize }

// AllSymbols returns every symbol table entry with the given name, in table
// order — ported from the original's get_all_symbols.
func (s *SymtabSection) AllSymbols(name string) []*Symbol {
	var out []*Symbol
	for _, sym := range s.Symbols {
		if sym.Name == name {
			out = append(out, sym)
		}
	}
	return out
}

// FirstSymbol returns the first symbol table entry with the given name, or
// nil — ported from the original's get_first_symbol.
func (s *SymtabSection) FirstSymbol(name string) *Symbol {
	all := s.AllSymbols(name)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// RelSection backs SHT_REL: relocations with no explicit addend.
type RelSection struct {
	SectionBase
	Relocs []*Relocation
}

func (s *RelSection) Size() uint32 { return uint32(len(s.Relocs)) * elf32.RelSize }

// RelaSection backs SHT_RELA: relocations with an explicit addend.
type RelaSection struct {
	SectionBase
	Relocs []*RelocationWithAddend
}

func (s *RelaSection) Size() uint32 { return uint32(len(s.Relocs)) * elf32.RelaSize }

// DynamicSection backs SHT_DYNAMIC.
type DynamicSection struct {
	SectionBase
	Dyns []*DynEntry
}

func (s *DynamicSection) Size() uint32 { return uint32(len(s.Dyns)) * elf32.DynSize }

// ArmAttributesSection backs SHT_ARM_ATTRIBUTES; Tags is populated by the
// loader's best-effort build-attributes grammar parse and left empty on any
// malformed input (see internal/model/loader.go).
type ArmAttributesSection struct {
	SectionBase
	Tags map[string]string
}

// NewStrtabSection constructs an empty string-table section; strings are
// added via Register and packed via Build (see strtab.go).
func NewStrtabSection(name string) *StrtabSection {
	s := &StrtabSection{}
	s.Name = name
	s.Shdr.Type = elf32.SHT_STRTAB
	s.Shdr.Addralign = 1
	s.order = nil
	s.offsets = map[string]uint32{}
	return s
}
