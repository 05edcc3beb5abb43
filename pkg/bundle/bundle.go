// Package bundle reads OBJ payloads packed in zip archives.
package bundle

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
)

// DefaultEntry is the entry read when a bundle is opened without naming one.
const DefaultEntry = "result.obj"

// Bundle errors.
var (
	ErrEntryNotFound = errors.New("bundle entry not found")
	ErrNoOBJEntry    = errors.New("bundle contains no .obj entry")
)

// Archive is an opened zip bundle.
type Archive struct {
	closer  io.Closer
	entries map[string]*zip.File
}

// Open opens a bundle on disk.
func Open(path string) (*Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening bundle: %w", err)
	}
	a := newArchive(&rc.Reader)
	a.closer = rc
	return a, nil
}

// OpenBytes opens a bundle held in memory, such as a downloaded payload.
func OpenBytes(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading bundle: %w", err)
	}
	return newArchive(zr), nil
}

func newArchive(zr *zip.Reader) *Archive {
	a := &Archive{entries: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		a.entries[normalizePath(f.Name)] = f
	}
	return a
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// List returns all entry paths in the archive, sorted.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.entries))
	for p := range a.entries {
		result = append(result, p)
	}
	sort.Strings(result)
	return result
}

// Contains checks if an entry exists. Lookups ignore case and slash style.
func (a *Archive) Contains(name string) bool {
	_, ok := a.entries[normalizePath(name)]
	return ok
}

// Read reads an entry from the archive.
func (a *Archive) Read(name string) ([]byte, error) {
	f, ok := a.entries[normalizePath(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data := make([]byte, 0, f.UncompressedSize64)
	buf := bytes.NewBuffer(data)
	if _, err := io.Copy(buf, rc); err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// FindOBJ returns the entry to import: DefaultEntry when present, otherwise
// the first .obj entry in path order.
func (a *Archive) FindOBJ() (string, error) {
	if a.Contains(DefaultEntry) {
		return DefaultEntry, nil
	}
	for _, p := range a.List() {
		if path.Ext(p) == ".obj" {
			return p, nil
		}
	}
	return "", ErrNoOBJEntry
}

func normalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	return strings.ToLower(p)
}
