package model

// RegisterStrings walks every section name, symbol name, and string-valued
// dynamic entry and registers it with the relevant string table, without
// packing anything yet — packing happens once, in BuildStrtabs, after every
// string that will ever be needed has been registered.
func RegisterStrings(e *Elf) {
	for _, sh := range e.Sections {
		if sh.IsDeleted() {
			continue
		}
		e.Shstrtab.Register(sh.Base().Name)

		switch s := sh.(type) {
		case *SymtabSection:
			strtab, _ := s.Link.(*StrtabSection)
			for _, sym := range s.Symbols {
				if sym.IsDeleted() || sym.Name == "" || strtab == nil {
					continue
				}
				strtab.Register(sym.Name)
			}
		case *DynamicSection:
			strtab, _ := s.Link.(*StrtabSection)
			for _, d := range s.Dyns {
				if d.IsDeleted() || !d.HasStr || strtab == nil {
					continue
				}
				strtab.Register(d.ValueStr)
			}
		}
	}
}

// BuildStrtabs packs every string table that has not already been packed.
func BuildStrtabs(e *Elf) {
	for _, sh := range e.Sections {
		if sh.IsDeleted() {
			continue
		}
		if s, ok := sh.(*StrtabSection); ok {
			s.Build()
		}
	}
}
