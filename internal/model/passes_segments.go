package model

import (
	"fmt"

	"github.com/xyproto/mkextmod/internal/elf32"
)

// ComputeSegments fills in the file offset, virtual/physical address, and
// size fields of every non-fixed segment from the sections it covers, which
// must already have been assigned by ComputeAddresses/ComputeOffsets.
// Segments loaded from the input file (Fixed) are left untouched except for
// p_offset, which always tracks wherever its first section landed.
func ComputeSegments(e *Elf) error {
	for _, seg := range e.Segments {
		if len(seg.Sections) == 0 {
			continue
		}
		first := seg.Sections[0].Base()
		seg.Phdr.Offset = first.Shdr.Offset

		if seg.IsFixed() {
			continue
		}

		seg.Phdr.Vaddr = first.Shdr.Addr
		seg.Phdr.Paddr = first.Paddr
		seg.Phdr.Filesz = 0
		seg.Phdr.Memsz = 0
		seg.Phdr.Flags = elf32.PF_R
		seg.Phdr.Align = 1

		for _, sh := range seg.Sections {
			b := sh.Base()

			if b.Shdr.Offset < seg.Phdr.Offset+seg.Phdr.Filesz {
				return fmt.Errorf("section %q offset precedes segment extent", b.Name)
			}
			seg.Phdr.Filesz = b.Shdr.Offset + sectionPSize(sh) - seg.Phdr.Offset

			if b.Paddr < seg.Phdr.Paddr+seg.Phdr.Memsz {
				return fmt.Errorf("section %q paddr precedes segment extent", b.Name)
			}
			if b.Shdr.Addr < seg.Phdr.Vaddr+seg.Phdr.Memsz {
				return fmt.Errorf("section %q vaddr precedes segment extent", b.Name)
			}
			seg.Phdr.Memsz = b.Shdr.Addr + b.Shdr.Size - seg.Phdr.Vaddr

			if b.Shdr.Flags&elf32.SHF_WRITE != 0 {
				seg.Phdr.Flags |= elf32.PF_W
			}
			if b.Shdr.Flags&elf32.SHF_EXECINSTR != 0 {
				seg.Phdr.Flags |= elf32.PF_X
			}
			if b.Shdr.Addralign > seg.Phdr.Align {
				seg.Phdr.Align = b.Shdr.Addralign
			}
		}
	}
	return nil
}
