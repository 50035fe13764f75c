package model

import (
	"sort"
	"strings"
)

// StrtabSection backs SHT_STRTAB. Strings are registered during the
// RegisterStrings pass and packed once, by Build, during BuildStrtabs —
// mirroring the original's two-phase register-then-build split so every
// section name and symbol name is known before the suffix-sharing packer
// runs.
type StrtabSection struct {
	SectionBase

	pending map[string]bool // registered, not yet packed
	order   []string        // registration order, for deterministic output
	offsets map[string]uint32
}

// Register records that s must appear in the table. The empty string is
// always implicitly present at offset 0 and is never registered.
func (s *StrtabSection) Register(str string) {
	if str == "" {
		return
	}
	if s.pending == nil {
		s.pending = map[string]bool{}
	}
	if s.Data != nil {
		// A new string arrived after a previous Build; force a rebuild.
		s.Data = nil
	}
	if !s.pending[str] {
		s.pending[str] = true
		s.order = append(s.order, str)
	}
}

// Lookup returns the NUL-terminated string starting at the given byte
// offset into the already-built table.
func (s *StrtabSection) Lookup(index uint32) string {
	end := index
	for end < uint32(len(s.Data)) && s.Data[end] != 0 {
		end++
	}
	return string(s.Data[index:end])
}

// Offset returns the byte offset at which str was packed. Build must have
// run first.
func (s *StrtabSection) Offset(str string) uint32 {
	if str == "" {
		return 0
	}
	return s.offsets[str]
}

// Build packs every registered string into Data using the suffix-sharing
// scheme the original tool uses: strings that share a common suffix (most
// often `.rel.text`/`.text`-style section-name pairs, or repeated
// trailing identifier fragments) are stored once, with shorter strings
// pointing into the tail of a longer one already written.
//
// The algorithm sorts strings by their reversal so that suffix-sharing
// candidates sit next to each other, then, per reversed-sorted string,
// checks whether it is a suffix of its predecessor's stored string (reuse)
// or a prefix-in-reverse of its successor (the successor absorbs it). This
// is a stable rewrite of the original's bisect-on-reversed-string approach;
// the output byte layout may not be bit-identical to the original packer,
// but shares its core property that no suffix class is stored twice.
func (s *StrtabSection) Build() {
	if s.Data != nil {
		return
	}

	type group struct {
		revKey string // reversed form of the group's representative (longest) string
		all    []string
	}
	var groups []group

	sorted := append([]string(nil), s.order...)
	sort.Slice(sorted, func(i, j int) bool { return reverseStr(sorted[i]) < reverseStr(sorted[j]) })

	for _, str := range sorted {
		rev := reverseStr(str)
		placed := false
		for i := range groups {
			g := &groups[i]
			if strings.HasPrefix(g.revKey, rev) {
				// str's reverse is a prefix of the group's reversed key,
				// i.e. str is a suffix of the group's longest string.
				g.all = append(g.all, str)
				placed = true
				break
			}
			if strings.HasPrefix(rev, g.revKey) {
				// str is longer and the existing group's string is a
				// suffix of it: str becomes the new representative.
				g.revKey = rev
				g.all = append(g.all, str)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, group{revKey: rev, all: []string{str}})
		}
	}

	data := []byte{0}
	offsets := map[string]uint32{}
	for _, g := range groups {
		longest := ""
		for _, str := range g.all {
			if len(str) > len(longest) {
				longest = str
			}
		}
		data = append(data, []byte(longest)...)
		data = append(data, 0)
		for _, str := range g.all {
			offsets[str] = uint32(len(data)) - uint32(len(str)) - 1
		}
	}

	s.Data = data
	s.offsets = offsets
}

func reverseStr(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
