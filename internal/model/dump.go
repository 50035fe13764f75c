package model

import (
	"fmt"
	"io"

	"github.com/xyproto/mkextmod/internal/elf32"
)

// Dump writes a human-readable listing of every section and segment in e,
// the Go equivalent of the original Dump visitor used for --verbose
// diagnostics: one line per section (index, name, type, addr, offset, size,
// and paddr once assigned) followed by one line per segment.
func Dump(w io.Writer, e *Elf) {
	for _, sh := range e.Sections {
		b := sh.Base()
		line := fmt.Sprintf("  [%2d] %-16s %-16s %08x %06x %06x",
			b.Index, b.Name, elf32.SHTName(b.Shdr.Type), b.Shdr.Addr, b.Shdr.Offset, b.Shdr.Size)
		if b.HasPaddr {
			line += fmt.Sprintf(" -- %08x", b.Paddr)
		}
		fmt.Fprintln(w, line)
	}
	for _, seg := range e.Segments {
		fmt.Fprintf(w, "  %-12s 0x%06x 0x%08x 0x%08x 0x%06x 0x%06x\n",
			elf32.PTName(seg.Phdr.Type), seg.Phdr.Offset, seg.Phdr.Vaddr, seg.Phdr.Paddr,
			seg.Phdr.Filesz, seg.Phdr.Memsz)
	}
}
