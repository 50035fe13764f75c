package rewriter

import (
	"github.com/xyproto/mkextmod/internal/elf32"
	"github.com/xyproto/mkextmod/internal/model"
)

// mkDyn promotes sym to a .dynsym entry, appending it to dynsym exactly
// once: a second call for the same symbol (whether reached via the veneer
// real-symbol path or the ordinary non-local/default-visibility promotion
// path) returns the already-promoted entry instead of appending a
// duplicate, mirroring the original's `hasattr(sym, "dyn")` memoization.
func mkDyn(dynsym *model.SymtabSection, sym *model.Symbol) *model.Symbol {
	if sym.Dyn != nil {
		return sym.Dyn
	}

	shndx := uint16(elf32.SHN_UNDEF)
	if sym.Section != nil {
		shndx = sym.Sym.Shndx
	}

	dsym := &model.Symbol{
		Name:    sym.Name,
		Section: sym.Section,
	}
	dsym.Sym.Value = sym.Sym.Value
	dsym.Sym.Size = sym.Sym.Size
	dsym.Sym.Info = sym.Sym.Info
	dsym.Sym.Other = sym.Sym.Other
	dsym.Sym.Shndx = shndx

	dynsym.Symbols = append(dynsym.Symbols, dsym)
	sym.Dyn = dsym
	return dsym
}
