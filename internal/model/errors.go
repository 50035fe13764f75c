package model

import "errors"

// ErrMalformedELF is returned by the loader when the input is not a
// well-formed ELF32/ARM relocatable object: bad magic, wrong class, wrong
// machine, unexpected header record sizes, or an e_shstrndx that is out of
// range or does not name a string table. Out-of-range sh_link, sh_info,
// st_shndx and r_sym values are not reported; the reference is left
// unresolved (nil).
var ErrMalformedELF = errors.New("malformed ELF32/ARM object")
