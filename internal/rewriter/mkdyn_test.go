package rewriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyproto/mkextmod/internal/model"
)

func TestMkDynIsIdempotent(t *testing.T) {
	dynsym := &model.SymtabSection{}
	dynsym.Symbols = append(dynsym.Symbols, &model.Symbol{}) // reserved null entry

	sym := &model.Symbol{Name: "foo"}
	sym.Sym.Value = 0x1000

	d1 := mkDyn(dynsym, sym)
	d2 := mkDyn(dynsym, sym)

	assert.Same(t, d1, d2, "a second promotion of the same symbol must return the same entry")
	require.Len(t, dynsym.Symbols, 2, "only one new .dynsym entry, plus the reserved null entry")
}

func TestMkDynCopiesSymbolFields(t *testing.T) {
	dynsym := &model.SymtabSection{}
	sec := &model.PlainSection{}
	sym := &model.Symbol{Name: "bar", Section: sec}
	sym.Sym.Value = 0x2000
	sym.Sym.Size = 64

	d := mkDyn(dynsym, sym)
	assert.Equal(t, sym.Name, d.Name)
	assert.Equal(t, sym.Sym.Value, d.Sym.Value)
	assert.Equal(t, sym.Sym.Size, d.Sym.Size)
	assert.Same(t, sec, d.Section)
}

func TestCPULookupKnownAndUnknown(t *testing.T) {
	cfg, err := LookupCPU("6S-M")
	require.NoError(t, err)
	assert.EqualValues(t, 12, cfg.VeneerSymbolOffset)

	cfg, err = LookupCPU("8-M.MAIN")
	require.NoError(t, err)
	assert.EqualValues(t, 4, cfg.VeneerSymbolOffset)

	_, err = LookupCPU("totally-unknown-cpu")
	require.Error(t, err)
	var unsupported *UnsupportedCPUError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "totally-unknown-cpu", unsupported.CPU)
}
