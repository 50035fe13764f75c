package rewriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyproto/mkextmod/internal/elf32"
	"github.com/xyproto/mkextmod/internal/model"
)

// buildMinimalObject constructs a tiny, already-dereferenced object graph by
// hand (skipping the byte-level loader): one .text section with a single
// global defined function symbol, a symtab/strtab pair, and an
// .ARM.attributes section naming a supported CPU. This is enough surface to
// exercise Rewrite's preprocessing, promotion, and dynamic-entry stages
// without needing a real linked .o fixture on disk.
func buildMinimalObject(t *testing.T, cpuName string) (*model.Elf, *model.Symbol) {
	t.Helper()
	e := &model.Elf{}

	text := &model.PlainSection{}
	text.Name = ".text"
	text.Shdr.Type = elf32.SHT_PROGBITS
	text.Shdr.Flags = elf32.SHF_ALLOC | elf32.SHF_EXECINSTR
	text.Shdr.Addralign = 4
	text.Data = []byte{0, 0, 0, 0}

	strtab := model.NewStrtabSection(".strtab")

	symtab := &model.SymtabSection{}
	symtab.Name = ".symtab"
	symtab.Shdr.Type = elf32.SHT_SYMTAB
	symtab.Link = strtab
	null := &model.Symbol{}
	fn := &model.Symbol{Name: "do_thing", Section: text}
	fn.Sym.SetBind(elf32.STB_GLOBAL)
	fn.Sym.SetType(elf32.STT_FUNC)
	fn.Sym.Value = 0
	symtab.Symbols = []*model.Symbol{null, fn}

	attrs := &model.ArmAttributesSection{Tags: map[string]string{"CPU_name": cpuName}}
	attrs.Name = ".ARM.attributes"
	attrs.Shdr.Type = elf32.SHT_ARM_ATTRIBUTES

	e.Sections = []model.Section{text, strtab, symtab, attrs}
	e.Shstrtab = model.NewStrtabSection(".shstrtab")

	return e, fn
}

func TestRewriteRejectsMissingCPU(t *testing.T) {
	e, _ := buildMinimalObject(t, "")
	// Remove the CPU name entirely.
	e.Sections[3].(*model.ArmAttributesSection).Tags = map[string]string{}

	err := Rewrite(e, Options{})
	require.ErrorIs(t, err, ErrMissingCPU)
}

func TestRewriteRejectsUnsupportedCPU(t *testing.T) {
	e, _ := buildMinimalObject(t, "ARM926EJ-S")
	err := Rewrite(e, Options{})
	require.Error(t, err)
	var unsupported *UnsupportedCPUError
	require.ErrorAs(t, err, &unsupported)
}

func TestRewritePromotesGlobalDefaultSymbol(t *testing.T) {
	e, fn := buildMinimalObject(t, "8-M.MAIN")
	err := Rewrite(e, Options{SonameBase: "mymodule.mxo"})
	require.NoError(t, err)
	require.NotNil(t, fn.Dyn, "a global default-visibility defined symbol must be promoted to .dynsym")
}

func TestRewriteEntryFlagSilentlySkipsMissingSymbol(t *testing.T) {
	e, _ := buildMinimalObject(t, "8-M.MAIN")
	err := Rewrite(e, Options{
		SonameBase: "mymodule.mxo",
		Entries: []EntryFlag{
			{Tag: 0x60000001, Symbol: "does_not_exist"},
			{Tag: 0x60000002, Symbol: "do_thing"},
		},
	})
	require.NoError(t, err)

	var dynamic *model.DynamicSection
	for _, sh := range e.Sections {
		if d, ok := sh.(*model.DynamicSection); ok {
			dynamic = d
		}
	}
	require.NotNil(t, dynamic)

	found := false
	missingFound := false
	for _, d := range dynamic.Dyns {
		if d.Dyn.Tag == 0x60000002 {
			found = true
		}
		if d.Dyn.Tag == 0x60000001 {
			missingFound = true
		}
	}
	assert.True(t, found, "the --entry flag for an existing symbol must produce a dynamic entry")
	assert.False(t, missingFound, "the --entry flag for a missing symbol must be silently skipped")
}

func TestRewriteStripRemovesDebugSections(t *testing.T) {
	e, _ := buildMinimalObject(t, "8-M.MAIN")
	debugInfo := &model.PlainSection{}
	debugInfo.Name = ".debug_info"
	debugInfo.Shdr.Type = elf32.SHT_PROGBITS
	debugLine := &model.PlainSection{}
	debugLine.Name = ".debug_line"
	debugLine.Shdr.Type = elf32.SHT_PROGBITS

	// A relocation section targeting a stripped debug section (Info) is not
	// itself .debug*-prefixed, so it only disappears via PurgeDeleted's
	// dangling-Info cascade, not the name-prefix check in Rewrite itself.
	relDebugInfo := &model.RelSection{}
	relDebugInfo.Name = ".rel.debug_info"
	relDebugInfo.Shdr.Type = elf32.SHT_REL
	relDebugInfo.Info = debugInfo
	relDebugInfo.Link = e.Sections[2] // .symtab

	e.Sections = append(e.Sections, debugInfo, debugLine, relDebugInfo)

	err := Rewrite(e, Options{SonameBase: "m.mxo", Strip: true})
	require.NoError(t, err)

	for _, sh := range e.Sections {
		b := sh.Base()
		assert.NotEqual(t, ".debug_info", b.Name)
		assert.NotEqual(t, ".debug_line", b.Name)
		assert.NotEqual(t, ".rel.debug_info", b.Name)
		assert.False(t, b.Link != nil && b.Link.IsDeleted(), "section %q must not retain a dangling Link reference", b.Name)
		assert.False(t, b.Info != nil && b.Info.IsDeleted(), "section %q must not retain a dangling Info reference", b.Name)
	}
}
