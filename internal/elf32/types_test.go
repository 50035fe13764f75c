package elf32

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type writer interface {
	Write(w io.Writer) error
}

func TestRecordSizes(t *testing.T) {
	require.Equal(t, 52, binarySize(t, &Ehdr{}))
	require.Equal(t, 40, binarySize(t, &Shdr{}))
	require.Equal(t, 32, binarySize(t, &Phdr{}))
	require.Equal(t, 16, binarySize(t, &Sym{}))
	require.Equal(t, 8, binarySize(t, &Rel{}))
	require.Equal(t, 12, binarySize(t, &Rela{}))
	require.Equal(t, 8, binarySize(t, &Dyn{}))
}

func binarySize(t *testing.T, v writer) int {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, v.Write(&buf))
	return buf.Len()
}

func TestShdrRoundTrip(t *testing.T) {
	in := &Shdr{Name: 1, Type: SHT_PROGBITS, Flags: SHF_ALLOC | SHF_EXECINSTR,
		Addr: 0x10000000, Offset: 0x34, Size: 0x100, Link: 0, Info: 0,
		Addralign: 4, Entsize: 0}

	var buf bytes.Buffer
	require.NoError(t, in.Write(&buf))
	require.Equal(t, ShdrSize, buf.Len())

	out := &Shdr{}
	require.NoError(t, out.Read(&buf))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("Shdr round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEhdrRoundTrip(t *testing.T) {
	in := &Ehdr{Type: 3, Machine: 40, Version: 1, Entry: 0, Phoff: 0x34,
		Shoff: 0x1000, Flags: 0x5000200, Ehsize: EhdrSize, Phentsize: PhdrSize,
		Phnum: 3, Shentsize: ShdrSize, Shnum: 10, Shstrndx: 9}
	copy(in.Ident[:], []byte{0x7f, 'E', 'L', 'F', 1, 1, 1, 0})

	var buf bytes.Buffer
	require.NoError(t, in.Write(&buf))
	out := &Ehdr{}
	require.NoError(t, out.Read(&buf))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("Ehdr round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPhdrRoundTrip(t *testing.T) {
	in := &Phdr{Type: PT_LOAD, Offset: 0x1000, Vaddr: 0x10000000, Paddr: 0x10000000,
		Filesz: 0x200, Memsz: 0x200, Flags: PF_R | PF_X, Align: 0x1000}

	var buf bytes.Buffer
	require.NoError(t, in.Write(&buf))
	out := &Phdr{}
	require.NoError(t, out.Read(&buf))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("Phdr round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSymBindTypeAccessors(t *testing.T) {
	s := &Sym{}
	s.SetBind(STB_GLOBAL)
	s.SetType(STT_FUNC)
	require.EqualValues(t, STB_GLOBAL, s.Bind())
	require.EqualValues(t, STT_FUNC, s.Type())

	// Setting one subfield must not disturb the other.
	s.SetType(STT_OBJECT)
	require.EqualValues(t, STB_GLOBAL, s.Bind())
	require.EqualValues(t, STT_OBJECT, s.Type())

	s.SetBind(STB_WEAK)
	require.EqualValues(t, STB_WEAK, s.Bind())
	require.EqualValues(t, STT_OBJECT, s.Type())
}

func TestSTInfoRoundTrip(t *testing.T) {
	info := STInfo(STB_GLOBAL, STT_FUNC)
	s := &Sym{Info: info}
	require.EqualValues(t, STB_GLOBAL, s.Bind())
	require.EqualValues(t, STT_FUNC, s.Type())
}

func TestRelInfoPacking(t *testing.T) {
	r := &Rel{}
	r.SetSym(0x1234)
	require.EqualValues(t, 0x1234, r.Sym())
	require.EqualValues(t, 0, r.RelType())

	r.Info = RInfo(0x1234, R_ARM_ABS32)
	require.EqualValues(t, 0x1234, r.Sym())
	require.EqualValues(t, R_ARM_ABS32, r.RelType())

	r.SetSym(0x5678)
	require.EqualValues(t, 0x5678, r.Sym())
	require.EqualValues(t, R_ARM_ABS32, r.RelType(), "SetSym must preserve RelType")
}

func TestRelaAddendIsSigned(t *testing.T) {
	in := &Rela{Offset: 4, Info: RInfo(1, R_ARM_ABS32), Addend: -8}
	var buf bytes.Buffer
	require.NoError(t, in.Write(&buf))
	out := &Rela{}
	require.NoError(t, out.Read(&buf))
	require.Equal(t, int32(-8), out.Addend)
}

func TestDynPtrAliasesVal(t *testing.T) {
	d := &Dyn{Tag: DT_HASH, Val: 0x2000}
	require.EqualValues(t, d.Val, d.Ptr())
}
