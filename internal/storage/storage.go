// Package storage is the blob side of an upload: files land in a single
// directory on local disk and are referred to everywhere else by their
// generated name.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// Dir is a filesystem-backed blob directory.
type Dir struct {
	path string
}

// Open ensures the directory exists and returns a handle to it.
func Open(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) Path() string {
	return d.path
}

// StoredName derives the on-disk name for an uploaded file: the millisecond
// timestamp, an underscore, then the original base name. The prefix keeps
// repeated uploads of the same file from overwriting each other; two uploads
// in the same millisecond can still collide, which is accepted.
func StoredName(originalName string, now time.Time) string {
	return fmt.Sprintf("%d_%s", now.UnixMilli(), filepath.Base(originalName))
}

// Save writes one accepted multipart file into the directory and returns
// the stored name. A partial write leaves the file behind; nothing cleans
// it up.
func (d *Dir) Save(fh *multipart.FileHeader) (string, error) {
	name := StoredName(fh.Filename, time.Now())

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(d.path, name))
	if err != nil {
		return "", fmt.Errorf("create blob %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write blob %s: %w", name, err)
	}
	return name, nil
}
