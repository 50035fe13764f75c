package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeDeletedCascadesThroughSymbolsAndRelocs(t *testing.T) {
	e := &Elf{}

	text := &PlainSection{}
	text.Name = ".text"
	e.Sections = append(e.Sections, text)

	strtab := NewStrtabSection(".strtab")
	e.Sections = append(e.Sections, strtab)

	symtab := &SymtabSection{}
	symtab.Name = ".symtab"
	symtab.Link = strtab
	sym := &Symbol{Name: "target", Section: text}
	symtab.Symbols = append(symtab.Symbols, sym)
	e.Sections = append(e.Sections, symtab)

	relText := &RelSection{}
	relText.Name = ".rel.text"
	relText.Link = symtab
	relText.Info = text
	rel := &Relocation{Symbol: sym}
	relText.Relocs = append(relText.Relocs, rel)
	e.Sections = append(e.Sections, relText)

	seg := &Segment{Sections: []Section{text}}
	e.Segments = append(e.Segments, seg)

	text.Delete()
	PurgeDeleted(e)

	require.Len(t, e.Sections, 2, "text and its relocation section must be purged, leaving strtab and symtab")
	assert.True(t, sym.IsDeleted())
	assert.True(t, rel.IsDeleted())
	assert.Empty(t, e.Segments, "a segment left with no sections must itself be purged")
}

func TestPurgeDeletedIsNoopWhenNothingDeleted(t *testing.T) {
	e := &Elf{}
	text := &PlainSection{}
	text.Name = ".text"
	e.Sections = append(e.Sections, text)

	PurgeDeleted(e)
	assert.Len(t, e.Sections, 1)
}
