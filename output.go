package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
)

// outputWriter persists generated files below the output root. Paths are
// relative to that root.
type outputWriter interface {
	Write(path string, content []byte) error
	CopyFile(src, dst string) error
	CopyTree(src, dst string) error
}

type fsWriter struct {
	root string
}

func newFSWriter(root string) *fsWriter {
	return &fsWriter{root: root}
}

func (w *fsWriter) Write(path string, content []byte) error {
	target := filepath.Join(w.root, path)
	if err := os.MkdirAll(filepath.Dir(target), os.FileMode(0775)); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return os.WriteFile(target, content, os.FileMode(0664))
}

// CopyFile returns an ErrAssetMissing kind error when src does not exist.
func (w *fsWriter) CopyFile(src, dst string) error {
	if err := requireSource(src); err != nil {
		return err
	}
	return copy.Copy(src, filepath.Join(w.root, dst))
}

// CopyTree replaces dst with a copy of the src tree.
func (w *fsWriter) CopyTree(src, dst string) error {
	if err := requireSource(src); err != nil {
		return err
	}
	target := filepath.Join(w.root, dst)
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("clear %s: %w", target, err)
	}
	return copy.Copy(src, target)
}

func requireSource(src string) error {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return assetMissingError(src)
		}
		return err
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
