package pacman

import (
	"archive/tar"
	"bytes"
	"compress/bzip2"
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	xz "github.com/smira/go-xz"
)

// LoadDatabase reads the repository database at path and returns its full
// snapshot: package name mapped to merged attributes. Multiple database
// entries (desc, files) contribute to a single package record.
func LoadDatabase(path string) (map[string]Attributes, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open database %s", path)
	}
	defer func() {
		_ = file.Close()
	}()

	uncompressed, err := DecompressingReader(file, path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open database %s", path)
	}
	if closer, ok := uncompressed.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	snapshot := make(map[string]Attributes, 1000)

	untar := tar.NewReader(uncompressed)
	for {
		header, err := untar.Next()
		if err == io.EOF {
			return snapshot, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read database %s", path)
		}

		// top-level entries (the per-package directories themselves)
		// carry no record
		if !strings.Contains(header.Name, "/") {
			continue
		}

		name := PackageNameFromEntry(header.Name)

		attributes, err := NewDescReader(untar).ReadAttributes()
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read entry %s from %s", header.Name, path)
		}

		if record, ok := snapshot[name]; ok {
			record.Update(attributes)
		} else {
			snapshot[name] = attributes
		}
	}
}

// PackageNameFromEntry derives the package name from a database entry name.
//
// Entries are named name-version-release/..., and a package name may itself
// contain hyphens, so version and release are stripped from the right:
// splitting from the left would misparse foo-bar-1.0-2.
func PackageNameFromEntry(entryName string) string {
	name := entryName
	if idx := strings.IndexByte(name, '/'); idx != -1 {
		name = name[:idx]
	}

	for i := 0; i < 2; i++ {
		if idx := strings.LastIndexByte(name, '-'); idx != -1 {
			name = name[:idx]
		}
	}

	return name
}

// DecompressingReader wraps the database stream with the matching
// decompressor. The format is sniffed from the first bytes, falling back to
// the file extension; repo-add emits gzip, bzip2, xz, zstd or plain tar.
func DecompressingReader(r io.Reader, path string) (io.Reader, error) {
	buffered := make([]byte, 512)
	n, err := io.ReadFull(r, buffered)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	buffered = buffered[:n]

	stream := io.MultiReader(bytes.NewReader(buffered), r)

	extension := ""
	if kind, err2 := filetype.Match(buffered); err2 == nil && kind != filetype.Unknown {
		extension = "." + kind.Extension
	} else if idx := strings.LastIndexByte(path, '.'); idx != -1 {
		extension = path[idx:]
	}

	switch extension {
	case ".gz":
		return pgzip.NewReader(stream)
	case ".bz2":
		return bzip2.NewReader(stream), nil
	case ".xz":
		return xz.NewReader(stream)
	case ".zst":
		reader, err := zstd.NewReader(stream)
		if err != nil {
			return nil, err
		}
		return reader.IOReadCloser(), nil
	}

	return stream, nil
}
