package rewriter

import (
	"os"
	"path/filepath"

	"github.com/xyproto/mkextmod/internal/model"
)

// WriteModuleFile serializes e to outputPath by writing to a temporary file
// in the same directory and renaming it into place, so a reader never
// observes a partially-written module. The temp file is fsynced before the
// rename on platforms where that call exists (see atomicwrite_*.go).
func WriteModuleFile(outputPath string, e *model.Elf) (err error) {
	dir := filepath.Dir(outputPath)
	tmp, err := os.CreateTemp(dir, ".mkextmod-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if err = model.WriteData(tmp, e); err != nil {
		tmp.Close()
		return err
	}
	if err = model.WriteHeaders(tmp, e); err != nil {
		tmp.Close()
		return err
	}
	if err = fsync(tmp.Fd()); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmpName, outputPath); err != nil {
		return err
	}
	return nil
}
