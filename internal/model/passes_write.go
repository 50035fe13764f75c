package model

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xyproto/mkextmod/internal/elf32"
)

// WriteData writes every section's byte content (and every entry-table
// section's synthesized entries) to its already-computed sh_offset. It must
// run after ComputeOffsets and before WriteHeaders, since symbol/relocation
// entries resolve their string-table and index cross-references here —
// mirroring the original, which interleaves that resolution with the byte
// write rather than doing it as a separate pass.
func WriteData(w io.WriterAt, e *Elf) error {
	for _, sh := range e.Sections {
		b := sh.Base()
		if b.Shdr.Type == elf32.SHT_NULL {
			continue
		}

		switch s := sh.(type) {
		case *SymtabSection:
			strtab, _ := s.Link.(*StrtabSection)
			buf := &bytes.Buffer{}
			for _, sym := range s.Symbols {
				if sym.Name != "" && strtab != nil {
					sym.Sym.Name = strtab.Offset(sym.Name)
				}
				if sym.Section != nil {
					sym.Sym.Shndx = uint16(sym.Section.Base().Index)
				}
				if err := sym.Sym.Write(buf); err != nil {
					return err
				}
			}
			if _, err := w.WriteAt(buf.Bytes(), int64(b.Shdr.Offset)); err != nil {
				return err
			}

		case *RelSection:
			buf := &bytes.Buffer{}
			for _, r := range s.Relocs {
				r.Rel.SetSym(uint32(r.Symbol.Index))
				if err := r.Rel.Write(buf); err != nil {
					return err
				}
			}
			if _, err := w.WriteAt(buf.Bytes(), int64(b.Shdr.Offset)); err != nil {
				return err
			}

		case *RelaSection:
			buf := &bytes.Buffer{}
			for _, r := range s.Relocs {
				r.Rela.SetSym(uint32(r.Symbol.Index))
				if err := r.Rela.Write(buf); err != nil {
					return err
				}
			}
			if _, err := w.WriteAt(buf.Bytes(), int64(b.Shdr.Offset)); err != nil {
				return err
			}

		case *DynamicSection:
			strtab, _ := s.Link.(*StrtabSection)
			buf := &bytes.Buffer{}
			for _, d := range s.Dyns {
				switch {
				case d.ValueFunc != nil:
					d.Dyn.Val = d.ValueFunc()
				case d.HasStr:
					if strtab == nil {
						return fmt.Errorf("dynamic entry %d: string value with no linked strtab", d.Dyn.Tag)
					}
					d.Dyn.Val = strtab.Offset(d.ValueStr)
				}
				if err := d.Dyn.Write(buf); err != nil {
					return err
				}
			}
			if _, err := w.WriteAt(buf.Bytes(), int64(b.Shdr.Offset)); err != nil {
				return err
			}

		default:
			if b.Shdr.Type == elf32.SHT_NOBITS {
				continue
			}
			if _, err := w.WriteAt(b.Data, int64(b.Shdr.Offset)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteHeaders writes the file header, the program header table, and the
// section header table. It must run last: section sh_name/sh_link/sh_info
// are only resolved to their final integer form here, from the
// already-packed shstrtab and already-assigned section indices.
func WriteHeaders(w io.WriterAt, e *Elf) error {
	e.Ehdr.Shstrndx = uint16(e.Shstrtab.Index)

	hdrBuf := &bytes.Buffer{}
	if err := e.Ehdr.Write(hdrBuf); err != nil {
		return err
	}
	if _, err := w.WriteAt(hdrBuf.Bytes(), 0); err != nil {
		return err
	}

	phBuf := &bytes.Buffer{}
	for _, seg := range e.Segments {
		if err := seg.Phdr.Write(phBuf); err != nil {
			return err
		}
	}
	if _, err := w.WriteAt(phBuf.Bytes(), int64(e.Ehdr.Phoff)); err != nil {
		return err
	}

	shBuf := &bytes.Buffer{}
	for _, sh := range e.Sections {
		b := sh.Base()
		if b.Name != "" {
			b.Shdr.Name = e.Shstrtab.Offset(b.Name)
		}
		if b.Link != nil {
			b.Shdr.Link = uint32(b.Link.Base().Index)
		}
		if b.Info != nil {
			b.Shdr.Flags |= elf32.SHF_INFO_LINK
			b.Shdr.Info = uint32(b.Info.Base().Index)
		}
		if err := b.Shdr.Write(shBuf); err != nil {
			return err
		}
	}
	if _, err := w.WriteAt(shBuf.Bytes(), int64(e.Ehdr.Shoff)); err != nil {
		return err
	}

	return nil
}
