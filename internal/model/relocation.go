package model

import "github.com/xyproto/mkextmod/internal/elf32"

// Relocation is one entry of a RelSection (no explicit addend; the addend
// lives in the bytes the relocation points at and must be decoded from the
// instruction encoding — see internal/rewriter's decode/undo helpers).
type Relocation struct {
	NodeBase
	Rel    elf32.Rel
	Symbol *Symbol
}

// RelocationWithAddend is one entry of a RelaSection.
type RelocationWithAddend struct {
	NodeBase
	Rela   elf32.Rela
	Symbol *Symbol
}
