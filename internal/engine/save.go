package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// Saver writes a buffer during an emergency save.
type Saver interface {
	Save(ctx context.Context, name string, data []byte) error
}

// SaverFunc adapts a function to the Saver interface.
type SaverFunc func(ctx context.Context, name string, data []byte) error

// Save calls f.
func (f SaverFunc) Save(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}

// maxSaveSuffix bounds the numbered names tried for one emergency file.
const maxSaveSuffix = 1000

// FileSaver writes emergency copies next to the original file as
// "name.save", or "name.save.N" when that already exists. Existing files are
// never overwritten.
type FileSaver struct {
	// Dir holds copies of unnamed buffers. Empty means the working directory.
	Dir string

	// Perm is the mode of new files. Zero means 0600.
	Perm fs.FileMode
}

// Save writes data to the first free emergency file name for name.
func (s FileSaver) Save(ctx context.Context, name string, data []byte) error {
	base := name
	if base == "" {
		base = filepath.Join(s.Dir, "linestorm")
	}
	base += ".save"

	perm := s.Perm
	if perm == 0 {
		perm = 0o600
	}

	for i := 0; i < maxSaveSuffix; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := base
		if i > 0 {
			path = base + "." + strconv.Itoa(i)
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return fmt.Errorf("%s: too many emergency files", base)
}
