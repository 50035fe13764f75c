package rewriter

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyproto/mkextmod/internal/elf32"
	"github.com/xyproto/mkextmod/internal/model"
)

// TestPromoteSymbolsAndVeneersCrossBankSeedCase covers spec seed case 4: CPU
// 6S-M, veneer __foo_veneer at 0x10000101 (Thumb bit set) with length 16,
// whose literal pool word 12 bytes in holds the real foo's address
// 0x20000001. The synthesized R_ARM_ABS32 must land at exactly
// 0x10000100 + 12 = 0x1000010C with a zero addend, targeting foo's dyn copy.
func TestPromoteSymbolsAndVeneersCrossBankSeedCase(t *testing.T) {
	text := &model.PlainSection{}
	text.Name = ".text"
	text.Shdr.Type = elf32.SHT_PROGBITS
	text.Shdr.Flags = elf32.SHF_ALLOC | elf32.SHF_EXECINSTR
	text.Shdr.Addr = 0x10000100
	text.Data = make([]byte, 16)
	binary.LittleEndian.PutUint32(text.Data[12:16], 0x20000001)

	veneer := &model.Symbol{Name: "__foo_veneer", Section: text}
	veneer.Sym.Value = 0x10000101 // Thumb bit set
	veneer.Sym.Size = 16
	veneer.Sym.SetBind(elf32.STB_LOCAL)

	foo := &model.Symbol{Name: "foo", Section: nil}
	foo.Sym.Value = 0x20000001
	foo.Sym.Shndx = elf32.SHN_ABS
	foo.Sym.SetBind(elf32.STB_LOCAL)

	symtab := &model.SymtabSection{}
	symtab.Name = ".symtab"
	symtab.Shdr.Type = elf32.SHT_SYMTAB
	symtab.Symbols = []*model.Symbol{{}, veneer, foo}

	e := &model.Elf{Sections: []model.Section{text, symtab}}

	dynsym := &model.SymtabSection{}
	dynsym.Symbols = append(dynsym.Symbols, &model.Symbol{})
	dynrela := &model.RelaSection{}

	cfg, err := LookupCPU("6S-M")
	require.NoError(t, err)

	require.NoError(t, promoteSymbolsAndVeneers(e, dynsym, dynrela, cfg))

	require.Len(t, dynrela.Relocs, 1)
	got := dynrela.Relocs[0]
	assert.EqualValues(t, 0x1000010C, got.Rela.Offset)
	assert.EqualValues(t, 0, got.Rela.Addend)
	assert.EqualValues(t, elf32.R_ARM_ABS32, got.Rela.Info&0xff)
	require.NotNil(t, foo.Dyn)
	assert.Same(t, foo.Dyn, got.Symbol)
}

// TestPromoteSymbolsAndVeneersTooSmallFailsLoud covers the case where a
// veneer-named symbol's st_size cannot hold the literal pool word the CPU's
// layout requires: this must be reported as an error, not silently treated
// as "not actually a veneer".
func TestPromoteSymbolsAndVeneersTooSmallFailsLoud(t *testing.T) {
	text := &model.PlainSection{}
	text.Name = ".text"
	text.Shdr.Type = elf32.SHT_PROGBITS
	text.Shdr.Flags = elf32.SHF_ALLOC | elf32.SHF_EXECINSTR
	text.Shdr.Addr = 0x10000100
	text.Data = make([]byte, 16)

	veneer := &model.Symbol{Name: "__foo_veneer", Section: text}
	veneer.Sym.Value = 0x10000100
	veneer.Sym.Size = 8 // smaller than VeneerSymbolOffset(12) + 4

	symtab := &model.SymtabSection{}
	symtab.Name = ".symtab"
	symtab.Shdr.Type = elf32.SHT_SYMTAB
	symtab.Symbols = []*model.Symbol{{}, veneer}

	e := &model.Elf{Sections: []model.Section{text, symtab}}
	dynsym := &model.SymtabSection{}
	dynrela := &model.RelaSection{}

	cfg, err := LookupCPU("6S-M")
	require.NoError(t, err)

	err = promoteSymbolsAndVeneers(e, dynsym, dynrela, cfg)
	require.Error(t, err)
	var tooSmall *VeneerTooSmallError
	require.ErrorAs(t, err, &tooSmall)
}
