package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Emitter adds exported documents to the manifest that sits next to them.
type Emitter struct{}

// Emit registers docPath in {dir(docPath)}/Content.mgcb for platform and
// returns the manifest path. Entries of an existing manifest are kept. The
// file is replaced through a temporary file and a rename, so a failure
// leaves the previous manifest untouched.
func (Emitter) Emit(fs afero.Fs, docPath, platform string) (string, error) {
	dir := filepath.Dir(docPath)
	path := filepath.Join(dir, FileName)

	m, err := load(fs, path, platform)
	if err != nil {
		return "", err
	}
	if platform != "" {
		m.Set("platform", platform)
	}
	m.AddCopy(filepath.ToSlash(filepath.Base(docPath)))

	if err := writeAtomic(fs, path, []byte(m.Render()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func load(fs afero.Fs, path, platform string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return New(platform), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data))
}

// writeAtomic writes data to a temporary file in the target directory and
// renames it over path.
func writeAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	f, err := afero.TempFile(fs, dir, ".tmp-"+filepath.Base(path)+"-")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()

	success := false
	defer func() {
		if !success {
			f.Close()
			fs.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := fs.Chmod(tmp, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	success = true
	return nil
}
