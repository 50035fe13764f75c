package model

import (
	"iter"

	"github.com/xyproto/mkextmod/internal/elf32"
)

// Elf is the root of the object graph: the file header plus the section and
// segment lists the pipeline passes mutate in place.
type Elf struct {
	Ehdr     elf32.Ehdr
	Sections []Section
	Segments []*Segment
	Shstrtab *StrtabSection
}

// NewElf constructs an empty ELF32 relocatable-object-shaped graph with the
// three header fields every new object needs (the three ctypes sizes the
// original's Elf.__init__ passes up before its Open Question typo
// short-circuits the rest of the chain — see DESIGN.md).
func NewElf() *Elf {
	e := &Elf{}
	e.Ehdr.Ehsize = elf32.EhdrSize
	e.Ehdr.Phentsize = elf32.PhdrSize
	e.Ehdr.Shentsize = elf32.ShdrSize
	e.Shstrtab = NewStrtabSection(".shstrtab")
	return e
}

// SectionsByType yields every non-deleted section of the given sh_type, in
// table order — the Go rewrite of the original's iter_sections generator.
// Lazy like its Python model: a pass that deletes or appends sections while
// iterating observes the current state of e.Sections on every pull, not a
// snapshot taken at the start of the range.
func (e *Elf) SectionsByType(shType uint32) iter.Seq[Section] {
	return func(yield func(Section) bool) {
		for _, sh := range e.Sections {
			if sh.IsDeleted() {
				continue
			}
			if sh.Base().Shdr.Type != shType {
				continue
			}
			if !yield(sh) {
				return
			}
		}
	}
}
