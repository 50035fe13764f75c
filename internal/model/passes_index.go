package model

import "sort"

// IndexNodes assigns dense, order-defining indices to every section and
// symbol, and fixes up the two header fields (e_shnum/e_phnum) and the
// symtab's sh_info (count of local symbols) that depend on that ordering.
//
// Symbol table entries are stably sorted into local-then-nonlocal order
// (required by ELF: sh_info must equal the index of the first non-local
// symbol), each group ordered by st_value to match the original's sort key.
func IndexNodes(e *Elf) {
	for i, sh := range e.Sections {
		sh.Base().Index = i

		switch s := sh.(type) {
		case *SymtabSection:
			var local, nonlocal []*Symbol
			for _, sym := range s.Symbols {
				if sym.Bind() == 0 { // STB_LOCAL
					local = append(local, sym)
				} else {
					nonlocal = append(nonlocal, sym)
				}
			}
			sort.SliceStable(local, func(i, j int) bool { return local[i].Sym.Value < local[j].Sym.Value })
			sort.SliceStable(nonlocal, func(i, j int) bool { return nonlocal[i].Sym.Value < nonlocal[j].Sym.Value })
			s.Symbols = append(local, nonlocal...)
			s.Shdr.Info = uint32(len(local))
			for j, sym := range s.Symbols {
				sym.Index = j
			}
		case *RelSection:
			sort.SliceStable(s.Relocs, func(i, j int) bool { return s.Relocs[i].Rel.Offset < s.Relocs[j].Rel.Offset })
		case *RelaSection:
			sort.SliceStable(s.Relocs, func(i, j int) bool { return s.Relocs[i].Rela.Offset < s.Relocs[j].Rela.Offset })
		}
	}

	e.Ehdr.Phnum = uint16(len(e.Segments))
	e.Ehdr.Shnum = uint16(len(e.Sections))
}
