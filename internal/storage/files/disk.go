package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
)

// DiskStore keeps each owner's files in root/<owner>/.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	const op = "storage.files.NewDiskStore"

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &DiskStore{root: root}, nil
}

func (d *DiskStore) List(_ context.Context, owner string) ([]string, error) {
	const op = "storage.files.DiskStore.List"

	entries, err := os.ReadDir(d.dir(owner))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

// Save writes to a temporary file first so readers never see a partial upload.
func (d *DiskStore) Save(_ context.Context, owner, name string, body io.Reader, _ int64) error {
	const op = "storage.files.DiskStore.Save"

	dir := d.dir(owner)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, filepath.Base(name))); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (d *DiskStore) Open(_ context.Context, owner, name string) (io.ReadCloser, error) {
	const op = "storage.files.DiskStore.Open"

	f, err := os.Open(filepath.Join(d.dir(owner), filepath.Base(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrFileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

func (d *DiskStore) dir(owner string) string {
	return filepath.Join(d.root, filepath.Base(owner))
}
