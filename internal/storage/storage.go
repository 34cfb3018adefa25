// Package storage keeps uploaded blobs on local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("blob not found")

// Store is the blob backend used for file uploads. Keys are slash separated
// and relative to the store root.
type Store interface {
	Put(ctx context.Context, dir, ext string, r io.Reader) (key string, size int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Disk is a Store rooted at a directory. All access goes through os.Root,
// so keys cannot escape the directory.
type Disk struct {
	root *os.Root
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open storage dir: %w", err)
	}
	return &Disk{root: root}, nil
}

func (d *Disk) Close() error {
	return d.root.Close()
}

// Put writes r under dir with a random name and the given extension.
func (d *Disk) Put(ctx context.Context, dir, ext string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if err := d.root.MkdirAll(dir, 0o755); err != nil {
		return "", 0, err
	}

	key := path.Join(dir, uuid.NewString()+ext)
	f, err := d.root.OpenFile(key, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, err
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = d.root.Remove(key)
		return "", 0, fmt.Errorf("write blob: %w", err)
	}
	return key, n, nil
}

func (d *Disk) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := d.root.Open(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (d *Disk) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := d.root.Remove(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
