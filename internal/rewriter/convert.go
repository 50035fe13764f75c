package rewriter

import (
	"encoding/binary"

	"github.com/xyproto/mkextmod/internal/elf32"
	"github.com/xyproto/mkextmod/internal/model"
)

// convertRelocations walks every SHT_REL section in the input, converting
// each applied relocation into a dynamic relocation-with-addend entry (or
// dropping it, for section-local references that stay resolved at load
// address). Relocation sections targeting a non-allocated section (debug
// info, mostly) are deleted outright rather than converted. Every input
// SHT_REL section is deleted once its relocations have been converted or
// rejected: load-time relocation in this format is carried exclusively by
// the synthesized .rela.dyn/.rel.dyn sections.
func convertRelocations(e *model.Elf, dynsym *model.SymtabSection, dynrela *model.RelaSection) error {
	for sh := range e.SectionsByType(elf32.SHT_REL) {
		section := sh.(*model.RelSection)
		target := section.Info.Base()

		if target.Shdr.Flags&elf32.SHF_ALLOC == 0 {
			section.Delete()
			continue
		}

		symtab, _ := section.Link.(*model.SymtabSection)

		for _, rel := range section.Relocs {
			sym := rel.Symbol
			if sym.Sym.Shndx == elf32.SHN_UNDEF {
				continue
			}

			relType := rel.Rel.RelType()
			effectiveSym := sym

			if (relType == elf32.R_ARM_THM_PC22 || relType == elf32.R_ARM_THM_JUMP24) &&
				(sym.Sym.Value>>28) != (rel.Rel.Offset>>28) {
				veneerName := "__" + sym.Name + "_veneer"
				var veneer *model.Symbol
				if symtab != nil {
					for _, st := range symtab.Symbols {
						if st.Name == veneerName {
							veneer = st
							break
						}
					}
				}
				if veneer == nil {
					return &MissingVeneerError{Symbol: sym.Name}
				}
				effectiveSym = veneer
			}

			if !elf32.SupportedRelocs[relType] {
				name := effectiveSym.Name
				if effectiveSym.Type() == elf32.STT_SECTION && effectiveSym.Section != nil {
					name = effectiveSym.Section.Base().Name
				}
				return &UnsupportedRelocError{RelocType: relType, Symbol: name, Section: section.Base().Name}
			}

			fileOffset := rel.Rel.Offset - target.Shdr.Addr
			insn := binary.LittleEndian.Uint32(target.Data[fileOffset : fileOffset+4])

			addend, err := decodeAddend(relType, insn)
			if err != nil {
				return err
			}
			addend, err = undoRelocation(relType, effectiveSym.Sym.Value, rel.Rel.Offset, addend)
			if err != nil {
				return err
			}

			if effectiveSym.Section != nil {
				switch relType {
				case elf32.R_ARM_ABS32, elf32.R_ARM_TARGET1:
					dynrela.Relocs = append(dynrela.Relocs, &model.RelocationWithAddend{
						Symbol: mkDyn(dynsym, effectiveSym),
						Rela: elf32.Rela{
							Offset: rel.Rel.Offset,
							Info:   elf32.RInfo(0, relType),
							Addend: addend,
						},
					})
				case elf32.R_ARM_THM_PC22, elf32.R_ARM_THM_JUMP24, elf32.R_ARM_PREL31:
					// Same address bank as its relocation site: stays
					// resolved at its link-time value, no dynamic entry.
					if (effectiveSym.Sym.Value >> 28) != (rel.Rel.Offset >> 28) {
						return &RelocationBankMismatchError{
							Symbol: effectiveSym.Name,
							Offset: rel.Rel.Offset,
							Value:  effectiveSym.Sym.Value,
						}
					}
				}
			} else {
				if relType == elf32.R_ARM_THM_PC22 || relType == elf32.R_ARM_THM_JUMP24 {
					a := addend
					if a < 0 {
						a = -a
					}
					if a >= 0x00400000 {
						return &RelocationOutOfRangeError{
							Symbol: effectiveSym.Name,
							Offset: rel.Rel.Offset,
							Addend: addend,
						}
					}
				}
				dynrela.Relocs = append(dynrela.Relocs, &model.RelocationWithAddend{
					Symbol: mkDyn(dynsym, effectiveSym),
					Rela: elf32.Rela{
						Offset: rel.Rel.Offset,
						Info:   elf32.RInfo(0, relType),
						Addend: addend,
					},
				})
			}
		}

		section.Delete()
	}
	return nil
}
