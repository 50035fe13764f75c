package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexNodesOrdersLocalsBeforeGlobals(t *testing.T) {
	e := &Elf{}
	symtab := &SymtabSection{}

	global1 := &Symbol{Name: "g1"}
	global1.Sym.SetBind(1) // STB_GLOBAL
	global1.Sym.Value = 0x20

	local1 := &Symbol{Name: "l1"}
	local1.Sym.Value = 0x10 // STB_LOCAL == 0

	local2 := &Symbol{Name: "l2"}
	local2.Sym.Value = 0x05

	symtab.Symbols = []*Symbol{global1, local1, local2}
	e.Sections = []Section{symtab}

	IndexNodes(e)

	require.Len(t, symtab.Symbols, 3)
	assert.Equal(t, "l2", symtab.Symbols[0].Name, "locals sorted by value come first")
	assert.Equal(t, "l1", symtab.Symbols[1].Name)
	assert.Equal(t, "g1", symtab.Symbols[2].Name, "globals follow all locals")
	assert.EqualValues(t, 2, symtab.Shdr.Info, "sh_info must equal the local symbol count")

	for i, sym := range symtab.Symbols {
		assert.Equal(t, i, sym.Index)
	}
	assert.EqualValues(t, 1, e.Ehdr.Shnum)
}
