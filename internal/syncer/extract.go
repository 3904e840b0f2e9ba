package syncer

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/klauspost/compress/gzip"
)

// definitionPattern selects the archive entries that are extracted.
const definitionPattern = "**/*.json"

// extract unpacks the definition files of the gzipped tarball archive into
// dir, dropping the first path component of every entry, then deletes the
// archive. It returns the number of files written.
func extract(archive, dir string) (int, error) {
	n, err := extractTar(archive, dir)
	if err != nil {
		return n, err
	}
	if err := os.Remove(archive); err != nil {
		return n, fmt.Errorf("remove archive: %w", err)
	}
	return n, nil
}

func extractTar(archive, dir string) (int, error) {
	f, err := os.Open(archive)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("open gzip: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	n := 0
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("read archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		rel, ok := stripComponent(hdr.Name)
		if !ok {
			continue
		}
		if !filepath.IsLocal(filepath.FromSlash(rel)) {
			return n, fmt.Errorf("archive entry %q escapes the staging directory", hdr.Name)
		}
		match, err := doublestar.Match(definitionPattern, rel)
		if err != nil {
			return n, err
		}
		if !match {
			continue
		}

		if err := writeEntry(filepath.Join(dir, filepath.FromSlash(rel)), tr); err != nil {
			return n, fmt.Errorf("extract %s: %w", hdr.Name, err)
		}
		n++
	}
}

// stripComponent drops the archive's top-level folder from name.
func stripComponent(name string) (string, bool) {
	name = strings.TrimPrefix(name, "./")
	_, rest, ok := strings.Cut(name, "/")
	if !ok || rest == "" {
		return "", false
	}
	return path.Clean(rest), true
}

func writeEntry(dst string, r io.Reader) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(out, r)
	return err
}
