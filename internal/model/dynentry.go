package model

import "github.com/xyproto/mkextmod/internal/elf32"

// DynValueFunc is the "callable" branch of the original's d_un.d_val union:
// a thunk evaluated once layout has completed (e.g. the section size for
// DT_RELASZ, or the section address for DT_HASH). WriteData calls it to
// fill in Dyn.Val immediately before the entry is serialized.
type DynValueFunc func() uint32

// DynEntry is one entry of a DynamicSection. Exactly one of the three value
// sources is used at write time: a literal scalar already in Dyn.Val, a
// string that resolves through the dynamic string table, or a late-bound
// Func evaluated after the rest of the layout is known.
type DynEntry struct {
	NodeBase
	Dyn       elf32.Dyn
	ValueStr  string
	HasStr    bool
	ValueFunc DynValueFunc
}
