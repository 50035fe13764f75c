package rewriter

import (
	"path/filepath"

	"github.com/xyproto/mkextmod/internal/elf32"
	"github.com/xyproto/mkextmod/internal/model"
)

// moduleSections bundles the synthesized sections a rewrite adds to the
// input object's section list, so they can be threaded between the
// construction, dynamic-entry, and final-assembly stages without a dozen
// separate return values.
type moduleSections struct {
	dynstr  *model.StrtabSection
	dynsym  *model.SymtabSection
	dynhash *model.PlainSection
	dynrela *model.RelaSection
	dynrel  *model.RelSection
	dynamic *model.DynamicSection
	phdrs   *model.PhdrsSection
	interp  *model.PlainSection
	footer  *model.PlainSection
}

const interpreterName = "ld_micropython"

func newModuleSections() *moduleSections {
	m := &moduleSections{}

	m.dynstr = model.NewStrtabSection(".dynstr")
	m.dynstr.Shdr.Flags = elf32.SHF_ALLOC

	m.dynsym = &model.SymtabSection{}
	m.dynsym.Name = ".dynsym"
	m.dynsym.Link = m.dynstr
	m.dynsym.Shdr.Type = elf32.SHT_DYNSYM
	m.dynsym.Shdr.Flags = elf32.SHF_ALLOC
	m.dynsym.Shdr.Addralign = elf32.SymAlign
	m.dynsym.Shdr.Entsize = elf32.SymSize
	// Index 0 of any symbol table is the reserved null entry.
	m.dynsym.Symbols = append(m.dynsym.Symbols, &model.Symbol{})

	m.dynhash = &model.PlainSection{}
	m.dynhash.Name = ".hash"
	m.dynhash.Link = m.dynsym
	m.dynhash.Shdr.Type = elf32.SHT_HASH
	m.dynhash.Shdr.Flags = elf32.SHF_ALLOC
	m.dynhash.Shdr.Addralign = 4

	m.dynrela = &model.RelaSection{}
	m.dynrela.Name = ".rela.dyn"
	m.dynrela.Link = m.dynsym
	m.dynrela.Shdr.Type = elf32.SHT_RELA
	m.dynrela.Shdr.Flags = elf32.SHF_ALLOC
	m.dynrela.Shdr.Addralign = elf32.RelaAlign
	m.dynrela.Shdr.Entsize = elf32.RelaSize

	m.dynrel = &model.RelSection{}
	m.dynrel.Name = ".rel.dyn"
	m.dynrel.Link = m.dynsym
	m.dynrel.Shdr.Type = elf32.SHT_REL
	m.dynrel.Shdr.Flags = elf32.SHF_ALLOC
	m.dynrel.Shdr.Addralign = elf32.RelAlign
	m.dynrel.Shdr.Entsize = elf32.RelSize

	m.dynamic = &model.DynamicSection{}
	m.dynamic.Name = ".dynamic"
	m.dynamic.Link = m.dynstr
	m.dynamic.Shdr.Type = elf32.SHT_DYNAMIC
	m.dynamic.Shdr.Flags = elf32.SHF_ALLOC
	m.dynamic.Shdr.Addralign = elf32.DynAlign
	m.dynamic.Shdr.Entsize = elf32.DynSize

	m.phdrs = &model.PhdrsSection{}
	m.phdrs.Name = ".phdrs"
	m.phdrs.Shdr.Flags = elf32.SHF_ALLOC
	m.phdrs.Shdr.Addralign = 4

	m.interp = &model.PlainSection{}
	m.interp.Name = ".interp"
	m.interp.Shdr.Type = elf32.SHT_PROGBITS
	m.interp.Shdr.Flags = elf32.SHF_ALLOC
	m.interp.Shdr.Addralign = 1
	m.interp.Data = append([]byte(interpreterName), 0)

	m.footer = &model.PlainSection{}
	m.footer.Name = ".footer"
	m.footer.Shdr.Type = elf32.SHT_PROGBITS
	m.footer.Shdr.Flags = elf32.SHF_ALLOC
	m.footer.Shdr.Addralign = 256
	m.footer.Shdr.Size = 8
	m.footer.Data = make([]byte, 8)

	return m
}

// buildDynamicEntries appends the full ordered set of .dynamic entries:
// hash/strtab/symtab always, rela/rel only when non-empty, flags, the
// optional __dl_init/__dl_fini entry points, the user's --entry flags, and
// finally the DT_NULL terminator.
func buildDynamicEntries(m *moduleSections, soname string, entries []EntryFlag) {
	dynhash := m.dynhash
	dynsym := m.dynsym
	dynstr := m.dynstr
	dynrela := m.dynrela
	dynrel := m.dynrel
	dynamic := m.dynamic

	appendEntry := func(tag int32, f func() uint32) {
		d := &model.DynEntry{ValueFunc: f}
		d.Dyn.Tag = tag
		dynamic.Dyns = append(dynamic.Dyns, d)
	}
	appendScalar := func(tag int32, val uint32) {
		d := &model.DynEntry{}
		d.Dyn.Tag = tag
		d.Dyn.Val = val
		dynamic.Dyns = append(dynamic.Dyns, d)
	}
	appendStr := func(tag int32, s string) {
		d := &model.DynEntry{HasStr: true, ValueStr: s}
		d.Dyn.Tag = tag
		dynamic.Dyns = append(dynamic.Dyns, d)
	}

	appendEntry(elf32.DT_HASH, func() uint32 { return dynhash.Shdr.Addr })
	dynhash.Data = hashSectionData(len(dynsym.Symbols))

	appendEntry(elf32.DT_STRTAB, func() uint32 { return dynstr.Shdr.Addr })
	appendEntry(elf32.DT_SYMTAB, func() uint32 { return dynsym.Shdr.Addr })

	if len(dynrela.Relocs) > 0 {
		appendEntry(elf32.DT_RELA, func() uint32 { return dynrela.Shdr.Addr })
		appendScalar(elf32.DT_RELAENT, elf32.RelaSize)
		appendEntry(elf32.DT_RELASZ, func() uint32 { return dynrela.Size() })
	}

	appendEntry(elf32.DT_STRSZ, func() uint32 { return uint32(len(dynstr.Data)) })
	appendScalar(elf32.DT_SYMENT, elf32.SymSize)
	appendStr(elf32.DT_SONAME, filepath.Base(soname))

	if len(dynrel.Relocs) > 0 {
		appendEntry(elf32.DT_REL, func() uint32 { return dynrel.Shdr.Addr })
		appendScalar(elf32.DT_RELENT, elf32.RelSize)
		appendEntry(elf32.DT_RELSZ, func() uint32 { return dynrel.Size() })
	}

	appendScalar(elf32.DT_FLAGS, elf32.DF_BIND_NOW|elf32.DF_TEXTREL)

	if init := dynsym.FirstSymbol("__dl_init"); init != nil {
		appendScalar(elf32.DT_INIT, init.Sym.Value)
	}
	if fini := dynsym.FirstSymbol("__dl_fini"); fini != nil {
		appendScalar(elf32.DT_FINI, fini.Sym.Value)
	}

	for _, ent := range entries {
		if sym := dynsym.FirstSymbol(ent.Symbol); sym != nil {
			appendScalar(ent.Tag, sym.Sym.Value)
		}
		// A named symbol with no matching dynamic entry is silently
		// skipped, matching the original's `if symbol:` guard.
	}

	dynamic.Dyns = append(dynamic.Dyns, &model.DynEntry{}) // DT_NULL terminator
}

// hashSectionData builds the minimal two-word .hash table: an empty bucket
// array (nchain carries the real symbol count, nbucket is left at zero, so
// every lookup falls through to a linear scan) — matching the original,
// which never populates the bucket/chain arrays beyond this header pair.
func hashSectionData(symCount int) []byte {
	data := make([]byte, 8)
	// nbucket = 0 (bytes 0:4), nchain = symCount (bytes 4:8).
	data[4] = byte(symCount)
	data[5] = byte(symCount >> 8)
	data[6] = byte(symCount >> 16)
	data[7] = byte(symCount >> 24)
	return data
}
