package rewriter

import (
	"fmt"
	"strconv"
	"strings"
)

// EntryFlagValue implements pflag.Value for a repeatable `--entry TAG
// SYMBOL` flag: each occurrence appends one EntryFlag to the slice it
// wraps. TAG is parsed as hexadecimal, matching the original's
// `int(tag, 16)`.
type EntryFlagValue struct {
	Entries *[]EntryFlag
}

func (v *EntryFlagValue) String() string {
	if v.Entries == nil || len(*v.Entries) == 0 {
		return ""
	}
	parts := make([]string, len(*v.Entries))
	for i, e := range *v.Entries {
		parts[i] = fmt.Sprintf("%#x=%s", e.Tag, e.Symbol)
	}
	return strings.Join(parts, ",")
}

// Set parses one "TAG SYMBOL" occurrence. cobra/pflag calls Set once per
// occurrence of the flag with the raw argument text; the two-token shape is
// passed through a single string split on whitespace, so `--entry` is
// given as one quoted argument: `--entry "0x60000001 my_symbol"`.
func (v *EntryFlagValue) Set(s string) error {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return fmt.Errorf("--entry requires a tag and a symbol name, got %q", s)
	}
	tag, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimPrefix(fields[0], "0x"), "0X"), 16, 64)
	if err != nil {
		return fmt.Errorf("--entry tag %q is not a hexadecimal integer: %w", fields[0], err)
	}
	*v.Entries = append(*v.Entries, EntryFlag{Tag: int32(tag), Symbol: fields[1]})
	return nil
}

func (v *EntryFlagValue) Type() string { return "tag symbol" }
