package rewriter

import (
	"encoding/binary"
	"strings"

	"github.com/xyproto/mkextmod/internal/elf32"
	"github.com/xyproto/mkextmod/internal/model"
)

// Rewrite turns a loaded relocatable object into a dynamically-loadable
// extension module in place: it strips debug info if requested, forces the
// .data*/.uninitialized_data* section flags the linker leaves ambiguous,
// determines the target CPU from .ARM.attributes, promotes symbols and
// recovers veneer relocations, converts the applied relocations that need
// load-time fixup into dynamic relocation-with-addend entries (relocations
// against undefined symbols and same-bank branches to defined symbols get
// none), synthesizes the dynamic linking
// sections and segments, runs the full layout pipeline, and stamps the
// footer signature. The caller is responsible for writing the result with
// model.WriteData/WriteHeaders.
func Rewrite(e *model.Elf, opts Options) error {
	cpuName := ""
	for _, sh := range e.Sections {
		b := sh.Base()
		if opts.Strip && strings.HasPrefix(b.Name, ".debug") {
			sh.Delete()
		}
		if strings.HasPrefix(b.Name, ".data") {
			b.Shdr.Flags |= elf32.SHF_WRITE
		}
		if strings.HasPrefix(b.Name, ".uninitialized_data") {
			b.Shdr.Flags |= elf32.SHF_ALLOC
		}
		if strings.HasPrefix(b.Name, ".ARM.attributes") {
			if attrs, ok := sh.(*model.ArmAttributesSection); ok {
				cpuName = attrs.Tags["CPU_name"]
			}
		}
	}
	model.PurgeDeleted(e)

	if cpuName == "" {
		return ErrMissingCPU
	}
	cpu, err := LookupCPU(cpuName)
	if err != nil {
		return err
	}

	m := newModuleSections()

	if err := promoteSymbolsAndVeneers(e, m.dynsym, m.dynrela, cpu); err != nil {
		return err
	}
	if err := convertRelocations(e, m.dynsym, m.dynrela); err != nil {
		return err
	}

	buildDynamicEntries(m, opts.SonameBase, opts.Entries)

	e.Sections = append(e.Sections,
		m.phdrs, m.dynamic, m.dynhash, m.dynstr, m.dynsym, m.interp, m.dynrela, m.dynrel, m.footer)

	phdrsSegment := &model.Segment{Sections: []model.Section{m.phdrs}}
	phdrsSegment.Phdr.Type = elf32.PT_PHDR
	interpSegment := &model.Segment{Sections: []model.Section{m.interp}}
	interpSegment.Phdr.Type = elf32.PT_INTERP
	e.Segments = append([]*model.Segment{phdrsSegment, interpSegment}, e.Segments...)

	phdrsLoadSegment := &model.Segment{Sections: []model.Section{m.phdrs}}
	phdrsLoadSegment.Phdr.Type = elf32.PT_LOAD
	dynamicSegment := &model.Segment{Sections: []model.Section{m.dynamic}}
	dynamicSegment.Phdr.Type = elf32.PT_DYNAMIC
	dynLoadSegment := &model.Segment{Sections: []model.Section{
		m.dynamic, m.dynhash, m.dynstr, m.dynsym, m.interp, m.dynrela, m.dynrel,
	}}
	dynLoadSegment.Phdr.Type = elf32.PT_LOAD
	loosSegment := &model.Segment{Sections: []model.Section{m.dynrela, m.dynrel}}
	loosSegment.Phdr.Type = elf32.PT_LOOS
	footerLoadSegment := &model.Segment{Sections: []model.Section{m.footer}}
	footerLoadSegment.Phdr.Type = elf32.PT_LOAD

	e.Segments = append(e.Segments,
		phdrsLoadSegment, dynamicSegment, dynLoadSegment, loosSegment, footerLoadSegment)

	model.IndexNodes(e)
	model.RegisterStrings(e)
	model.BuildStrtabs(e)
	model.ComputeAddresses(e)
	model.ComputeOffsets(e, 0)
	if err := model.ComputeSegments(e); err != nil {
		return err
	}

	stampFooter(m)

	return nil
}

// stampFooter writes the footer signature: the physical address of the
// program header table, followed by its bitwise complement, each as a
// little-endian uint32 — a cheap integrity check the extension loader uses
// to confirm it has found the real footer and not unrelated data.
func stampFooter(m *moduleSections) {
	phdrAddr := m.phdrs.Paddr
	binary.LittleEndian.PutUint32(m.footer.Data[0:4], phdrAddr)
	binary.LittleEndian.PutUint32(m.footer.Data[4:8], ^phdrAddr)
}
