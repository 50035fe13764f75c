package rewriter

import (
	"errors"
	"fmt"

	"github.com/xyproto/mkextmod/internal/elf32"
)

// ErrMissingCPU is returned when no .ARM.attributes section (or no
// Tag_CPU_name within it) names the target CPU.
var ErrMissingCPU = errors.New("CPU not found in .ARM.attributes")

// ErrUnsupportedReloc is returned when an input relocation entry uses a
// relocation type the rewriter does not know how to undo.
var ErrUnsupportedReloc = errors.New("unsupported relocation type")

// ErrMissingVeneerTarget is returned when a relocation referencing a symbol
// from a different address bank has no corresponding __<name>_veneer
// symbol to redirect to.
var ErrMissingVeneerTarget = errors.New("missing veneer symbol")

// ErrMissingVeneerSymbol is returned when a `__*_veneer`-named symbol's
// literal pool does not point at any known symbol of the expected name and
// value, so its real target cannot be identified.
var ErrMissingVeneerSymbol = errors.New("cannot resolve veneer target symbol")

// ErrRelocationOutOfRange is returned when a PC-relative Thumb relocation
// against an externally-resolved symbol carries an addend too large for
// the load-time relocation to represent.
var ErrRelocationOutOfRange = errors.New("relocation addend out of range")

// ErrRelocationBankMismatch is returned when an in-bank PC-relative
// relocation's symbol value and relocation offset disagree on their top
// address nibble, meaning it was misclassified as in-bank.
var ErrRelocationBankMismatch = errors.New("relocation symbol and site are in different address banks")

// ErrVeneerTooSmall is returned when a `__*_veneer`-named symbol's st_size
// is too small to hold the literal pool word the CPU's veneer layout
// expects, meaning it cannot be the linker-generated veneer its name claims.
var ErrVeneerTooSmall = errors.New("veneer symbol too small for literal pool")

// UnsupportedCPUError names the unrecognized CPU found in an input's build
// attributes.
type UnsupportedCPUError struct {
	CPU string
}

func (e *UnsupportedCPUError) Error() string {
	return fmt.Sprintf("CPU %q not supported", e.CPU)
}

// UnsupportedRelocError names the relocation type, symbol, and section that
// triggered ErrUnsupportedReloc.
type UnsupportedRelocError struct {
	RelocType uint32
	Symbol    string
	Section   string
}

func (e *UnsupportedRelocError) Error() string {
	return fmt.Sprintf("unsupported relocation type %s of symbol %q in section %q",
		elf32.RArmName(e.RelocType), e.Symbol, e.Section)
}

func (e *UnsupportedRelocError) Unwrap() error { return ErrUnsupportedReloc }

// MissingVeneerError names the symbol a relocation needed a veneer for.
type MissingVeneerError struct {
	Symbol string
}

func (e *MissingVeneerError) Error() string {
	return fmt.Sprintf("missing veneer for %q", e.Symbol)
}

func (e *MissingVeneerError) Unwrap() error { return ErrMissingVeneerTarget }

// UnresolvedVeneerSymbolError names a veneer symbol whose literal-pool
// target could not be matched to any candidate symbol of the expected name
// and value.
type UnresolvedVeneerSymbolError struct {
	Veneer   string
	RealName string
	Value    uint32
}

func (e *UnresolvedVeneerSymbolError) Error() string {
	return fmt.Sprintf("cannot find symbol %q for veneer %q with value 0x%08x", e.RealName, e.Veneer, e.Value)
}

func (e *UnresolvedVeneerSymbolError) Unwrap() error { return ErrMissingVeneerSymbol }

// RelocationOutOfRangeError names the relocation site and addend that
// exceeded the representable range for an external PC-relative fixup.
type RelocationOutOfRangeError struct {
	Symbol string
	Offset uint32
	Addend int32
}

func (e *RelocationOutOfRangeError) Error() string {
	return fmt.Sprintf("relocation against %q at offset 0x%08x has out-of-range addend %d", e.Symbol, e.Offset, e.Addend)
}

func (e *RelocationOutOfRangeError) Unwrap() error { return ErrRelocationOutOfRange }

// RelocationBankMismatchError names the relocation site and symbol whose
// address banks disagree despite being classified as in-bank.
type RelocationBankMismatchError struct {
	Symbol string
	Offset uint32
	Value  uint32
}

func (e *RelocationBankMismatchError) Error() string {
	return fmt.Sprintf("symbol %q (value 0x%08x) and relocation site (offset 0x%08x) are in different address banks",
		e.Symbol, e.Value, e.Offset)
}

func (e *RelocationBankMismatchError) Unwrap() error { return ErrRelocationBankMismatch }

// VeneerTooSmallError names a veneer-named symbol whose st_size cannot
// hold the literal pool word its CPU's veneer layout requires.
type VeneerTooSmallError struct {
	Symbol string
	Offset uint32
	Size   uint32
}

func (e *VeneerTooSmallError) Error() string {
	return fmt.Sprintf("veneer symbol %q has size %d, too small for literal pool at offset %d", e.Symbol, e.Size, e.Offset)
}

func (e *VeneerTooSmallError) Unwrap() error { return ErrVeneerTooSmall }
