package model

import "github.com/xyproto/mkextmod/internal/elf32"

// Symbol is one entry of a SymtabSection.
type Symbol struct {
	NodeBase
	Sym     elf32.Sym
	Name    string
	Section Section // defining section, nil for SHN_UNDEF/SHN_ABS/SHN_COMMON
	Index   int

	// Dyn is the promoted .dynsym entry for this symbol, set by mk_dyn.
	// A non-nil Dyn makes promotion idempotent: callers check this field
	// before appending a new dynamic-symbol-table entry.
	Dyn *Symbol
}

// Bind returns the symbol's ST_BIND subfield.
func (s *Symbol) Bind() uint8 { return s.Sym.Bind() }

// Type returns the symbol's ST_TYPE subfield.
func (s *Symbol) Type() uint8 { return s.Sym.Type() }
