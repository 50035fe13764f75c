package model

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xyproto/mkextmod/internal/elf32"
)

// Load reads the file header, program header table, and section header
// table from r (which must support random access) and returns an Elf graph
// with every section built to its concrete variant type, but with no byte
// data, string tables, or cross-references resolved yet — callers must
// follow Load with ReadData then Dereference, exactly as the original's
// open_elffile does.
func Load(r io.ReadSeeker) (*Elf, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	e := &Elf{}
	if err := e.Ehdr.Read(r); err != nil {
		return nil, fmt.Errorf("reading ELF header: %w", ErrMalformedELF)
	}
	if e.Ehdr.Ident[elf32.EI_MAG0] != elf32.ELFMAG0 ||
		e.Ehdr.Ident[elf32.EI_MAG1] != elf32.ELFMAG1 ||
		e.Ehdr.Ident[elf32.EI_MAG2] != elf32.ELFMAG2 ||
		e.Ehdr.Ident[elf32.EI_MAG3] != elf32.ELFMAG3 {
		return nil, fmt.Errorf("reading ELF header: %w", ErrMalformedELF)
	}
	if e.Ehdr.Ident[elf32.EI_CLASS] != elf32.ELFCLASS32 {
		return nil, fmt.Errorf("not a 32-bit object: %w", ErrMalformedELF)
	}
	if e.Ehdr.Machine != elf32.EM_ARM {
		return nil, fmt.Errorf("not an ARM object (e_machine=%d): %w", e.Ehdr.Machine, ErrMalformedELF)
	}
	if e.Ehdr.Ehsize != elf32.EhdrSize {
		return nil, fmt.Errorf("unexpected e_ehsize=%d: %w", e.Ehdr.Ehsize, ErrMalformedELF)
	}
	if e.Ehdr.Phentsize != 0 && e.Ehdr.Phentsize != elf32.PhdrSize {
		return nil, fmt.Errorf("unexpected e_phentsize=%d: %w", e.Ehdr.Phentsize, ErrMalformedELF)
	}
	if e.Ehdr.Shentsize != elf32.ShdrSize {
		return nil, fmt.Errorf("unexpected e_shentsize=%d: %w", e.Ehdr.Shentsize, ErrMalformedELF)
	}

	if _, err := r.Seek(int64(e.Ehdr.Phoff), io.SeekStart); err != nil {
		return nil, err
	}
	for i := 0; i < int(e.Ehdr.Phnum); i++ {
		seg := &Segment{NodeBase: NodeBase{Fixed: true}}
		if err := seg.Phdr.Read(r); err != nil {
			return nil, fmt.Errorf("reading program header %d: %w", i, err)
		}
		e.Segments = append(e.Segments, seg)
	}

	if _, err := r.Seek(int64(e.Ehdr.Shoff), io.SeekStart); err != nil {
		return nil, err
	}
	for i := 0; i < int(e.Ehdr.Shnum); i++ {
		var raw elf32.Shdr
		if err := raw.Read(r); err != nil {
			return nil, fmt.Errorf("reading section header %d: %w", i, err)
		}
		sh := newSection(raw)
		sh.Base().Fixed = true
		e.Sections = append(e.Sections, sh)
	}

	return e, nil
}

// newSection constructs the concrete variant for a just-read section
// header, mirroring the original's Section.sh_types dispatch table.
func newSection(raw elf32.Shdr) Section {
	switch raw.Type {
	case elf32.SHT_SYMTAB, elf32.SHT_DYNSYM:
		s := &SymtabSection{}
		s.Shdr = raw
		return s
	case elf32.SHT_REL:
		s := &RelSection{}
		s.Shdr = raw
		return s
	case elf32.SHT_RELA:
		s := &RelaSection{}
		s.Shdr = raw
		return s
	case elf32.SHT_STRTAB:
		s := NewStrtabSection("")
		s.Shdr = raw
		return s
	case elf32.SHT_DYNAMIC:
		s := &DynamicSection{}
		s.Shdr = raw
		return s
	case elf32.SHT_ARM_ATTRIBUTES:
		s := &ArmAttributesSection{Tags: map[string]string{}}
		s.Shdr = raw
		return s
	default:
		s := &PlainSection{}
		s.Shdr = raw
		return s
	}
}

// ReadData reads every section's byte content (SHT_NOBITS sections get no
// data) and, for entry-table sections, decodes each fixed-size record.
// String tables additionally reset their registration state so a later
// RegisterStrings pass starts clean even on a loaded (not newly
// constructed) table. ARM attribute sections get a best-effort parse of the
// build-attributes sub-format (see parseArmAttributes).
func ReadData(r io.ReadSeeker, e *Elf) error {
	for _, sh := range e.Sections {
		b := sh.Base()
		if b.Shdr.Type != elf32.SHT_NULL {
			if _, err := r.Seek(int64(b.Shdr.Offset), io.SeekStart); err != nil {
				return err
			}
		}
		if b.Shdr.Type != elf32.SHT_NOBITS && b.Shdr.Type != elf32.SHT_NULL {
			buf := make([]byte, b.Shdr.Size)
			if _, err := io.ReadFull(r, buf); err != nil {
				return fmt.Errorf("reading section data: %w", err)
			}
			b.Data = buf
		}

		switch s := sh.(type) {
		case *SymtabSection:
			n := 0
			if b.Shdr.Entsize > 0 {
				n = int(b.Shdr.Size / b.Shdr.Entsize)
			}
			rd := bytes.NewReader(b.Data)
			for i := 0; i < n; i++ {
				sym := &Symbol{NodeBase: NodeBase{Fixed: true}}
				if err := sym.Sym.Read(rd); err != nil {
					return err
				}
				s.Symbols = append(s.Symbols, sym)
			}
		case *RelSection:
			n := 0
			if b.Shdr.Entsize > 0 {
				n = int(b.Shdr.Size / b.Shdr.Entsize)
			}
			rd := bytes.NewReader(b.Data)
			for i := 0; i < n; i++ {
				rel := &Relocation{NodeBase: NodeBase{Fixed: true}}
				if err := rel.Rel.Read(rd); err != nil {
					return err
				}
				s.Relocs = append(s.Relocs, rel)
			}
		case *RelaSection:
			n := 0
			if b.Shdr.Entsize > 0 {
				n = int(b.Shdr.Size / b.Shdr.Entsize)
			}
			rd := bytes.NewReader(b.Data)
			for i := 0; i < n; i++ {
				rel := &RelocationWithAddend{NodeBase: NodeBase{Fixed: true}}
				if err := rel.Rela.Read(rd); err != nil {
					return err
				}
				s.Relocs = append(s.Relocs, rel)
			}
		case *DynamicSection:
			n := 0
			if b.Shdr.Entsize > 0 {
				n = int(b.Shdr.Size / b.Shdr.Entsize)
			}
			rd := bytes.NewReader(b.Data)
			for i := 0; i < n; i++ {
				d := &DynEntry{NodeBase: NodeBase{Fixed: true}}
				if err := d.Dyn.Read(rd); err != nil {
					return err
				}
				s.Dyns = append(s.Dyns, d)
			}
		case *StrtabSection:
			s.pending = map[string]bool{}
			s.order = nil
			s.offsets = map[string]uint32{}
		case *ArmAttributesSection:
			s.Tags = parseArmAttributes(b.Data)
		}
	}
	return nil
}

// Dereference resolves every index-based cross-reference in the just-loaded
// graph (section name/link/info, symbol name/section, relocation symbol)
// into direct pointers, and fixes up each segment's section list from the
// address ranges it covers.
func Dereference(e *Elf) error {
	if int(e.Ehdr.Shstrndx) >= len(e.Sections) {
		return fmt.Errorf("e_shstrndx out of range: %w", ErrMalformedELF)
	}
	shstrtab, ok := e.Sections[e.Ehdr.Shstrndx].(*StrtabSection)
	if !ok {
		return fmt.Errorf("e_shstrndx does not name a string table: %w", ErrMalformedELF)
	}
	e.Shstrtab = shstrtab

	for _, sh := range e.Sections {
		b := sh.Base()
		b.Name = shstrtab.Lookup(b.Shdr.Name)
		if int(b.Shdr.Link) < len(e.Sections) {
			b.Link = e.Sections[b.Shdr.Link]
		}
		if b.Shdr.Flags&elf32.SHF_INFO_LINK != 0 && int(b.Shdr.Info) < len(e.Sections) {
			b.Info = e.Sections[b.Shdr.Info]
		}
	}

	for _, sh := range e.Sections {
		switch s := sh.(type) {
		case *SymtabSection:
			strtab, _ := s.Link.(*StrtabSection)
			for _, sym := range s.Symbols {
				if strtab != nil {
					sym.Name = strtab.Lookup(sym.Sym.Name)
				}
				if sym.Sym.Shndx > elf32.SHN_UNDEF && sym.Sym.Shndx < elf32.SHN_LORESERVE {
					if int(sym.Sym.Shndx) < len(e.Sections) {
						sym.Section = e.Sections[sym.Sym.Shndx]
					}
				}
			}
		case *RelSection:
			symtab, _ := s.Link.(*SymtabSection)
			if symtab != nil {
				for _, r := range s.Relocs {
					if idx := r.Rel.Sym(); int(idx) < len(symtab.Symbols) {
						r.Symbol = symtab.Symbols[idx]
					}
				}
			}
		case *RelaSection:
			symtab, _ := s.Link.(*SymtabSection)
			if symtab != nil {
				for _, r := range s.Relocs {
					if idx := r.Rela.Sym(); int(idx) < len(symtab.Symbols) {
						r.Symbol = symtab.Symbols[idx]
					}
				}
			}
		}
	}

	for _, seg := range e.Segments {
		seg.Sections = nil
		for _, sh := range e.Sections {
			if seg.Contains(sh) {
				seg.Sections = append(seg.Sections, sh)
			}
		}
	}

	return nil
}

// OpenFile loads, reads, and dereferences an ELF32/ARM relocatable object in
// one call, matching the original's open_elffile helper.
func OpenFile(r io.ReadSeeker) (*Elf, error) {
	e, err := Load(r)
	if err != nil {
		return nil, err
	}
	if err := ReadData(r, e); err != nil {
		return nil, err
	}
	if err := Dereference(e); err != nil {
		return nil, err
	}
	return e, nil
}

// parseArmAttributes best-effort parses the .ARM.attributes build
// attributes sub-format far enough to extract the CPU_name tag, returning
// an empty map on any malformed input (wrong format-version byte, wrong
// vendor string, wrong scope, or a truncated buffer) rather than erroring —
// matching the original's bare-except-equivalent early returns.
func parseArmAttributes(data []byte) map[string]string {
	tags := map[string]string{}
	if len(data) == 0 || data[0] != 0x41 {
		return tags
	}
	data = data[1:]

	if len(data) < 4 {
		return tags
	}
	size := leUint32(data)
	if int(size) > len(data) || size < 4 {
		return tags
	}
	data = data[4:size]

	nul := bytes.IndexByte(data, 0)
	if nul < 0 || string(data[:nul]) != "aeabi" {
		return tags
	}
	data = data[nul+1:]

	if len(data) == 0 || data[0] != 1 { // Tag_File (scope)
		return tags
	}
	data = data[1:]

	if len(data) < 4 {
		return tags
	}
	size = leUint32(data)
	if int(size) > len(data) || size < 4 {
		return tags
	}
	data = data[4:size]

	if len(data) == 0 || data[0] != 5 { // Tag_CPU_name
		return tags
	}
	data = data[1:]

	nul = bytes.IndexByte(data, 0)
	if nul < 0 {
		return tags
	}
	tags["CPU_name"] = string(data[:nul])
	return tags
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
