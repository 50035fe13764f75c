package rewriter

import (
	"encoding/binary"
	"strings"

	"github.com/xyproto/mkextmod/internal/elf32"
	"github.com/xyproto/mkextmod/internal/model"
)

const veneerPrefix = "__"
const veneerSuffix = "_veneer"

// isVeneerSymbol reports whether name is a linker-generated veneer symbol
// name (`__<real name>_veneer`).
func isVeneerSymbol(name string) bool {
	return strings.HasPrefix(name, veneerPrefix) && strings.HasSuffix(name, veneerSuffix) &&
		len(name) > len(veneerPrefix)+len(veneerSuffix)
}

// veneerRealName strips the `__`/`_veneer` wrapping from a veneer symbol
// name to recover the name of the function it trampolines to.
func veneerRealName(name string) string {
	return name[len(veneerPrefix) : len(name)-len(veneerSuffix)]
}

// promoteSymbolsAndVeneers walks every SHT_SYMTAB section's symbol table
// twice per symbol: once to promote non-local default-visibility defined
// symbols to .dynsym, and once to recognize veneer symbols and synthesize
// the R_ARM_ABS32 relocation GCC -q omits inside them, redirecting
// indirect calls at the veneer's real target rather than the veneer itself.
func promoteSymbolsAndVeneers(e *model.Elf, dynsym *model.SymtabSection, dynrela *model.RelaSection, cpu CPUConfig) error {
	for sh := range e.SectionsByType(elf32.SHT_SYMTAB) {
		symtab := sh.(*model.SymtabSection)
		for _, sym := range symtab.Symbols {
			if sym.Section == nil {
				continue
			}
			if sym.Bind() != elf32.STB_LOCAL && sym.Sym.Visibility() == elf32.STV_DEFAULT {
				mkDyn(dynsym, sym)
			}

			if !isVeneerSymbol(sym.Name) {
				continue
			}

			symOffset := cpu.VeneerSymbolOffset
			if symOffset+4 > sym.Sym.Size {
				return &VeneerTooSmallError{Symbol: sym.Name, Offset: symOffset, Size: sym.Sym.Size}
			}
			rOffset := (sym.Sym.Value &^ 1) + symOffset
			secBase := sym.Section.Base()
			fileOffset := rOffset - secBase.Shdr.Addr
			if int(fileOffset)+4 > len(secBase.Data) {
				return &VeneerTooSmallError{Symbol: sym.Name, Offset: symOffset, Size: sym.Sym.Size}
			}
			realValue := binary.LittleEndian.Uint32(secBase.Data[fileOffset : fileOffset+4])

			realName := veneerRealName(sym.Name)
			var realSym *model.Symbol
			for _, cand := range symtab.AllSymbols(realName) {
				if cand.Sym.Value == realValue {
					realSym = cand
					break
				}
			}
			if realSym == nil {
				return &UnresolvedVeneerSymbolError{Veneer: sym.Name, RealName: realName, Value: realValue}
			}

			rela := &model.RelocationWithAddend{Symbol: mkDyn(dynsym, realSym)}
			rela.Rela.Offset = rOffset
			rela.Rela.Info = elf32.RInfo(0, elf32.R_ARM_ABS32)
			rela.Rela.Addend = 0
			dynrela.Relocs = append(dynrela.Relocs, rela)
		}
	}
	return nil
}
