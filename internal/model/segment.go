package model

import "github.com/xyproto/mkextmod/internal/elf32"

// Segment is one ELF32 program header plus the sections it covers.
type Segment struct {
	NodeBase
	Phdr     elf32.Phdr
	Sections []Section
}

// Contains reports whether sh's virtual address range falls entirely within
// the segment's [p_vaddr, p_vaddr+p_memsz) range.
func (p *Segment) Contains(sh Section) bool {
	b := sh.Base()
	return p.Phdr.Vaddr <= b.Shdr.Addr &&
		p.Phdr.Vaddr+p.Phdr.Memsz >= b.Shdr.Addr+b.Shdr.Size
}
