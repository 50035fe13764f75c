// Package elf32 defines the bit-exact record shapes and enumerations of the
// 32-bit little-endian ELF object format used by the mkextmod rewriter.
//
// Every record here round-trips through encoding/binary with
// binary.LittleEndian: fields are ordered to match the on-disk layout, sized
// to the ELF32 spec exactly, and contain no derived or pointer state.
package elf32

import (
	"encoding/binary"
	"fmt"
	"io"
)

// EI_NIDENT is the size of the e_ident byte array at the start of Ehdr.
const EI_NIDENT = 16

// Indices into Ehdr.Ident.
const (
	EI_MAG0    = 0
	EI_MAG1    = 1
	EI_MAG2    = 2
	EI_MAG3    = 3
	EI_CLASS   = 4
	EI_DATA    = 5
	EI_VERSION = 6
	EI_OSABI   = 7
)

// Magic number and class/data/version values.
const (
	ELFMAG0 = 0x7f
	ELFMAG1 = 'E'
	ELFMAG2 = 'L'
	ELFMAG3 = 'F'

	ELFCLASS32 = 1
	ELFCLASS64 = 2

	ELFDATA2LSB = 1
	ELFDATA2MSB = 2

	EV_CURRENT = 1
)

// Object file types (e_type).
const (
	ET_NONE = 0
	ET_REL  = 1
	ET_EXEC = 2
	ET_DYN  = 3
	ET_CORE = 4
)

// Machine types (e_machine). Only ARM is in scope; others are listed for
// validation error messages.
const (
	EM_NONE = 0
	EM_ARM  = 40
)

// Fixed on-disk sizes of every record type, used by the loader to validate
// e_ehsize/e_phentsize/e_shentsize and by the offset-computation pass.
const (
	EhdrSize = 52
	ShdrSize = 40
	PhdrSize = 32
	SymSize  = 16
	RelSize  = 8
	RelaSize = 12
	DynSize  = 8
)

// Natural alignments of each record type: every field is a 32-bit (or
// smaller) scalar, so each record's alignment is 4 bytes.
const (
	PhdrAlign = 4
	ShdrAlign = 4
	SymAlign  = 4
	RelAlign  = 4
	RelaAlign = 4
	DynAlign  = 4
)

// Ehdr is the ELF32 file header.
type Ehdr struct {
	Ident     [EI_NIDENT]byte
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint32
	Phoff     uint32
	Shoff     uint32
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

func (h *Ehdr) Read(r io.Reader) error {
	return binary.Read(r, binary.LittleEndian, h)
}

func (h *Ehdr) Write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, h)
}

// Shdr is an ELF32 section header.
type Shdr struct {
	Name      uint32
	Type      uint32
	Flags     uint32
	Addr      uint32
	Offset    uint32
	Size      uint32
	Link      uint32
	Info      uint32
	Addralign uint32
	Entsize   uint32
}

func (s *Shdr) Read(r io.Reader) error {
	return binary.Read(r, binary.LittleEndian, s)
}

func (s *Shdr) Write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, s)
}

// Phdr is an ELF32 program header.
type Phdr struct {
	Type   uint32
	Offset uint32
	Vaddr  uint32
	Paddr  uint32
	Filesz uint32
	Memsz  uint32
	Flags  uint32
	Align  uint32
}

func (p *Phdr) Read(r io.Reader) error {
	return binary.Read(r, binary.LittleEndian, p)
}

func (p *Phdr) Write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, p)
}

// Sym is an ELF32 symbol table entry.
type Sym struct {
	Name  uint32
	Value uint32
	Size  uint32
	Info  uint8
	Other uint8
	Shndx uint16
}

func (s *Sym) Read(r io.Reader) error {
	return binary.Read(r, binary.LittleEndian, s)
}

func (s *Sym) Write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, s)
}

// Bind returns the ST_BIND subfield of Info.
func (s *Sym) Bind() uint8 { return s.Info >> 4 }

// SetBind rewrites the ST_BIND subfield of Info, preserving ST_TYPE.
func (s *Sym) SetBind(bind uint8) { s.Info = (bind << 4) | (s.Info & 0xf) }

// Type returns the ST_TYPE subfield of Info.
func (s *Sym) Type() uint8 { return s.Info & 0xf }

// SetType rewrites the ST_TYPE subfield of Info, preserving ST_BIND.
func (s *Sym) SetType(typ uint8) { s.Info = (s.Info & 0xf0) | (typ & 0xf) }

// Visibility returns the ST_VISIBILITY subfield of Other.
func (s *Sym) Visibility() uint8 { return s.Other & 0x3 }

// STInfo packs a bind/type pair into an st_info byte.
func STInfo(bind, typ uint8) uint8 { return (bind << 4) | (typ & 0xf) }

// Rel is an ELF32 relocation entry without an explicit addend.
type Rel struct {
	Offset uint32
	Info   uint32
}

func (r *Rel) Read(rd io.Reader) error {
	return binary.Read(rd, binary.LittleEndian, r)
}

func (r *Rel) Write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, r)
}

// Sym returns the R_SYM subfield of Info.
func (r *Rel) Sym() uint32 { return r.Info >> 8 }

// SetSym rewrites the R_SYM subfield of Info, preserving R_TYPE.
func (r *Rel) SetSym(sym uint32) { r.Info = RInfo(sym, r.RelType()) }

// RelType returns the R_TYPE subfield of Info.
func (r *Rel) RelType() uint32 { return r.Info & 0xff }

// Rela is an ELF32 relocation entry with an explicit addend.
type Rela struct {
	Offset uint32
	Info   uint32
	Addend int32
}

func (r *Rela) Read(rd io.Reader) error {
	return binary.Read(rd, binary.LittleEndian, r)
}

func (r *Rela) Write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, r)
}

// Sym returns the R_SYM subfield of Info.
func (r *Rela) Sym() uint32 { return r.Info >> 8 }

// SetSym rewrites the R_SYM subfield of Info, preserving R_TYPE.
func (r *Rela) SetSym(sym uint32) { r.Info = RInfo(sym, r.RelType()) }

// RelType returns the R_TYPE subfield of Info.
func (r *Rela) RelType() uint32 { return r.Info & 0xff }

// RInfo packs a symbol index and relocation type into an r_info word.
func RInfo(sym, typ uint32) uint32 { return (sym << 8) | (typ & 0xff) }

// Dyn is an ELF32 dynamic section entry. Val and Ptr alias the same word, as
// in the ELF32 Elf32_Dyn union; callers pick whichever accessor reads best
// for the tag in question.
type Dyn struct {
	Tag int32
	Val uint32
}

func (d *Dyn) Read(r io.Reader) error {
	return binary.Read(r, binary.LittleEndian, d)
}

func (d *Dyn) Write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, d)
}

// Ptr is an alias of Val, for call sites that are conceptually reading an
// address rather than a scalar (DT_INIT, DT_HASH, ...).
func (d *Dyn) Ptr() uint32 { return d.Val }

func (h *Ehdr) String() string {
	return fmt.Sprintf("ELF32 type=%d machine=%d phnum=%d shnum=%d shstrndx=%d",
		h.Type, h.Machine, h.Phnum, h.Shnum, h.Shstrndx)
}
