package model

import "github.com/xyproto/mkextmod/internal/elf32"

// DefaultShAlign is the alignment boundary the start of section data is
// padded to after the program header table, matching the original's
// default page-aligned layout.
const DefaultShAlign = 4096

// ComputeOffsets lays out every section's file offset, plus e_phoff and
// e_shoff, by walking sections in their current (index) order and packing
// each one's data after the last, respecting each section's sh_addralign.
func ComputeOffsets(e *Elf, shAlign uint32) {
	if shAlign == 0 {
		shAlign = DefaultShAlign
	}

	offset := uint32(elf32.EhdrSize)
	offset = align(offset, elf32.PhdrAlign)
	e.Ehdr.Phoff = offset
	offset += uint32(len(e.Segments)) * elf32.PhdrSize
	offset = align(offset, shAlign)

	for _, sh := range e.Sections {
		b := sh.Base()
		switch sh.(type) {
		case *PhdrsSection:
			b.Shdr.Offset = e.Ehdr.Phoff
		case *EhdrSection:
			b.Shdr.Offset = 0
		default:
			if b.Shdr.Type != elf32.SHT_NULL {
				offset = align(offset, b.Shdr.Addralign)
				b.Shdr.Offset = offset
				offset += sectionPSize(sh)
			}
		}
	}

	offset = align(offset, elf32.ShdrAlign)
	e.Ehdr.Shoff = offset
	offset += uint32(len(e.Sections)) * elf32.ShdrSize
}
