package assets

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/Faultbox/sceneexport/pkg/grf"
)

// Source is one place files can be read from.
type Source interface {
	Name() string
	Has(name string) bool
	Read(name string) ([]byte, error)
	Close() error
}

// cleanName turns an RO style name into a slash separated relative path.
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// DirSource reads files below a directory. A name that does not exist as
// given is retried in lower case, since RO clients are case-insensitive.
type DirSource struct {
	root string
	fs   afero.Fs
}

// NewDirSource creates a source rooted at dir on fs.
func NewDirSource(fs afero.Fs, dir string) *DirSource {
	return &DirSource{root: dir, fs: fs}
}

// Name implements Source.
func (d *DirSource) Name() string {
	return d.root
}

// Path returns where name lives on the underlying file system.
func (d *DirSource) Path(name string) string {
	if p, ok := d.resolve(name); ok {
		return p
	}
	return filepath.Join(d.root, filepath.FromSlash(cleanName(name)))
}

func (d *DirSource) resolve(name string) (string, bool) {
	clean := cleanName(name)
	for _, candidate := range []string{clean, strings.ToLower(clean)} {
		p := filepath.Join(d.root, filepath.FromSlash(candidate))
		if ok, _ := afero.Exists(d.fs, p); ok {
			return p, true
		}
	}
	return "", false
}

// Has implements Source.
func (d *DirSource) Has(name string) bool {
	_, ok := d.resolve(name)
	return ok
}

// Read implements Source.
func (d *DirSource) Read(name string) ([]byte, error) {
	p, ok := d.resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	data, err := afero.ReadFile(d.fs, p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, err
}

// Close implements Source.
func (d *DirSource) Close() error {
	return nil
}

// ArchiveSource reads files from a GRF archive under its data/ folder.
type ArchiveSource struct {
	path    string
	archive *grf.Archive
}

// NewArchiveSource wraps an opened archive. path is only used for naming.
func NewArchiveSource(path string, archive *grf.Archive) *ArchiveSource {
	return &ArchiveSource{path: path, archive: archive}
}

// Name implements Source.
func (a *ArchiveSource) Name() string {
	return a.path
}

func archiveName(name string) string {
	return "data/" + cleanName(name)
}

// Has implements Source.
func (a *ArchiveSource) Has(name string) bool {
	return a.archive.Contains(archiveName(name))
}

// Read implements Source.
func (a *ArchiveSource) Read(name string) ([]byte, error) {
	data, err := a.archive.Read(archiveName(name))
	if errors.Is(err, grf.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, err
}

// Close implements Source.
func (a *ArchiveSource) Close() error {
	return a.archive.Close()
}
