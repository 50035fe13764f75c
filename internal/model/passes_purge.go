package model

// PurgeDeleted transitively removes every node reachable from a deleted
// node: a section whose link/info section was deleted, a symbol whose
// defining section was deleted, a relocation whose symbol was deleted, and
// a segment left with no surviving sections. It iterates to a fixed point
// because deleting one node can make another eligible (e.g. deleting a
// symbol table's defining section cascades to the symbols, which cascades
// to every relocation referencing them).
func PurgeDeleted(e *Elf) {
	for {
		again := false

		for _, sh := range e.Sections {
			if sh.IsDeleted() {
				continue
			}
			again = purgeSection(sh) || again
		}

		kept := e.Sections[:0]
		for _, sh := range e.Sections {
			if !sh.IsDeleted() {
				kept = append(kept, sh)
			}
		}
		e.Sections = kept

		for _, seg := range e.Segments {
			if seg.IsDeleted() {
				continue
			}
			survivors := seg.Sections[:0]
			for _, sh := range seg.Sections {
				if !sh.IsDeleted() {
					survivors = append(survivors, sh)
				}
			}
			seg.Sections = survivors
			if len(seg.Sections) == 0 {
				seg.Delete()
				again = true
			}
		}
		keptSeg := e.Segments[:0]
		for _, seg := range e.Segments {
			if !seg.IsDeleted() {
				keptSeg = append(keptSeg, seg)
			}
		}
		e.Segments = keptSeg

		if !again {
			return
		}
	}
}

// purgeSection applies the variant-specific cascade rules for one section
// and reports whether it deleted anything (directly or via an entry).
func purgeSection(sh Section) bool {
	b := sh.Base()
	changed := false

	if (b.Link != nil && b.Link.IsDeleted()) || (b.Info != nil && b.Info.IsDeleted()) {
		sh.Delete()
		changed = true
	}

	switch s := sh.(type) {
	case *SymtabSection:
		kept := s.Symbols[:0]
		for _, sym := range s.Symbols {
			if sym.Section != nil && sym.Section.IsDeleted() && !sym.IsDeleted() {
				sym.Delete()
				changed = true
			}
			if !sym.IsDeleted() {
				kept = append(kept, sym)
			} else {
				changed = true
			}
		}
		s.Symbols = kept
	case *RelSection:
		kept := s.Relocs[:0]
		for _, r := range s.Relocs {
			if r.Symbol != nil && r.Symbol.IsDeleted() && !r.IsDeleted() {
				r.Delete()
			}
			if !r.IsDeleted() {
				kept = append(kept, r)
			} else {
				changed = true
			}
		}
		s.Relocs = kept
	case *RelaSection:
		kept := s.Relocs[:0]
		for _, r := range s.Relocs {
			if r.Symbol != nil && r.Symbol.IsDeleted() && !r.IsDeleted() {
				r.Delete()
			}
			if !r.IsDeleted() {
				kept = append(kept, r)
			} else {
				changed = true
			}
		}
		s.Relocs = kept
	}

	return changed
}
