package model

import "github.com/xyproto/mkextmod/internal/elf32"

// Flash and RAM are the two address-space regions the extension loader maps
// at a fixed location regardless of CPU: code and read-only data go in
// flash starting at 0x10000000, writable data in RAM starting at 0x20000000.
const (
	FlashBase = 0x10000000
	RAMBase   = 0x20000000
)

func align(addr, alignment uint32) uint32 {
	if alignment == 0 {
		return addr
	}
	return (addr + alignment - 1) &^ (alignment - 1)
}

// ComputeAddresses assigns sh_addr (and, for allocated sections, a shadow
// flash placement address Paddr) to every section that does not already
// have a fixed one from the input file. Segments that were loaded from the
// input (Fixed) instead propagate their vaddr/paddr delta onto the sections
// they cover, so a fixed segment's sections keep the load-time relationship
// between its two addresses.
func ComputeAddresses(e *Elf) {
	nextFlash := uint32(FlashBase)
	nextRAM := uint32(RAMBase)

	for _, seg := range e.Segments {
		if !seg.IsFixed() {
			continue
		}
		delta := seg.Phdr.Paddr - seg.Phdr.Vaddr
		for _, sh := range seg.Sections {
			b := sh.Base()
			b.Paddr = b.Shdr.Addr + delta
			b.HasPaddr = true
		}
	}

	for _, sh := range e.Sections {
		b := sh.Base()
		b.Shdr.Size = sectionSize(e, sh)

		if b.Shdr.Flags&elf32.SHF_ALLOC == 0 {
			continue
		}

		if b.Shdr.Flags&elf32.SHF_WRITE != 0 {
			if !b.IsFixed() {
				b.Shdr.Addr = align(nextRAM, b.Shdr.Addralign)
			}
			nextRAM = b.Shdr.Addr + align(b.Shdr.Size, b.Shdr.Addralign)
		}

		if b.Shdr.Flags&elf32.SHF_WRITE == 0 || b.Shdr.Type != elf32.SHT_NOBITS {
			if !b.IsFixed() {
				b.Paddr = align(nextFlash, b.Shdr.Addralign)
				b.HasPaddr = true
			}
			nextFlash = b.Paddr + align(sectionPSize(sh), b.Shdr.Addralign)
		}

		if !b.IsFixed() {
			if b.Shdr.Flags&elf32.SHF_WRITE == 0 {
				b.Shdr.Addr = b.Paddr
			} else if b.Shdr.Type == elf32.SHT_NOBITS {
				b.Paddr = b.Shdr.Addr
				b.HasPaddr = true
			}
		}
	}
}

func sectionSize(e *Elf, sh Section) uint32 {
	switch s := sh.(type) {
	case *EhdrSection:
		return uint32(elf32.EhdrSize)
	case *PhdrsSection:
		return uint32(len(e.Segments)) * elf32.PhdrSize
	case *SymtabSection:
		return s.Size()
	case *RelSection:
		return s.Size()
	case *RelaSection:
		return s.Size()
	case *DynamicSection:
		return s.Size()
	default:
		return sh.Base().Size()
	}
}

func sectionPSize(sh Section) uint32 {
	b := sh.Base()
	if b.Shdr.Type == elf32.SHT_NOBITS {
		return 0
	}
	return b.PSize()
}
