package steps

import (
	"fmt"
	"io"
	"os"

	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/symbolic"
)

// CopyFile resolves entry natively and either links dst to src or copies
// src's content to dst. An existing dst is overwritten by a copy and makes a
// link fail.
func CopyFile(entry definition.CopyFile, target symbolic.Target) error {
	src := symbolic.Resolve(entry.Src, target, false)
	dst := symbolic.Resolve(entry.Dst, target, false)

	if entry.Symlink {
		if err := os.Symlink(src, dst); err != nil {
			return fmt.Errorf("link %s -> %s: %w", dst, src, err)
		}
		return nil
	}
	if err := copyContent(src, dst); err != nil {
		return fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}
	return nil
}

// DeleteFile resolves entry natively and removes the file.
func DeleteFile(entry definition.DeleteFile, target symbolic.Target) error {
	src := symbolic.Resolve(entry.Src, target, false)
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("delete %s: %w", src, err)
	}
	return nil
}

func copyContent(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
