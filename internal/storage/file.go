package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

// File persists the guest cart as a JSON file so it survives a process
// restart. Not encrypted and not size-bounded.
type File struct {
	path string
}

func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	return &File{path: filepath.Join(dir, StorageKey+".json")}, nil
}

func (f *File) Load(_ context.Context) ([]domain.CartItem, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	items, err := decodeItems(data)
	if err != nil {
		return nil, fmt.Errorf("decodeItems: %w", err)
	}
	return items, nil
}

func (f *File) Save(_ context.Context, items []domain.CartItem) error {
	data, err := encodeItems(items)
	if err != nil {
		return fmt.Errorf("encodeItems: %w", err)
	}

	// Write-then-rename so a crash never leaves a torn snapshot behind.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}

func (f *File) Clear(_ context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove: %w", err)
	}
	return nil
}
