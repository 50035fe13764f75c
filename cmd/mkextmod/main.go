// Command mkextmod rewrites a 32-bit ARM relocatable ELF object produced by
// a normal link into a dynamically-loadable extension module: it promotes
// exported symbols to a synthesized dynamic symbol table, converts the
// applied relocations that need load-time fixup into load-time relocations
// against that table, and
// lays out the result as flash-resident code/rodata plus a small RAM data
// segment, the shape the extension loader expects.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/xyproto/mkextmod/internal/model"
	"github.com/xyproto/mkextmod/internal/rewriter"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	var (
		output  string
		strip   bool
		verbose bool
		entries []rewriter.EntryFlag
	)

	cmd := &cobra.Command{
		Use:   "mkextmod <input>",
		Short: "Process an extension module ELF file for dynamic linking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			outPath := output
			if outPath == "" {
				outPath = input
			}

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("opening %s: %w", input, err)
			}
			elffile, err := model.OpenFile(f)
			closeErr := f.Close()
			if err != nil {
				return fmt.Errorf("reading %s: %w", input, err)
			}
			if closeErr != nil {
				return closeErr
			}

			opts := rewriter.Options{
				Strip:      strip,
				SonameBase: input,
				Entries:    entries,
			}
			if err := rewriter.Rewrite(elffile, opts); err != nil {
				return fmt.Errorf("rewriting %s: %w", input, err)
			}

			if verbose {
				model.Dump(os.Stderr, elffile)
			}

			if err := rewriter.WriteModuleFile(outPath, elffile); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}

			log.Printf("wrote %s", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output ELF file (defaults to overwriting the input)")
	cmd.Flags().BoolVar(&strip, "strip", false, "strip debug info")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "dump the rewritten section/segment layout to stderr")
	cmd.Flags().Var(&rewriter.EntryFlagValue{Entries: &entries}, "entry",
		`add a dynamic entry: "TAG SYMBOL" (TAG in hex), may be repeated`)

	return cmd
}
