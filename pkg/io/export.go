package io

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/matzehuels/bpjson/pkg/errors"
)

// Compressed reports whether name selects zstd compression.
func Compressed(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".zst")
}

// Write copies data to w, compressing it when name ends in ".zst".
func Write(w io.Writer, name string, data []byte) error {
	if !Compressed(name) {
		if _, err := w.Write(data); err != nil {
			return errors.Wrap(errors.ErrCodeWriteFailure, err, "write %s", name)
		}
		return nil
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "zstd writer")
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return errors.Wrap(errors.ErrCodeWriteFailure, err, "write %s", name)
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailure, err, "flush %s", name)
	}
	return nil
}

// WriteFile writes data to path atomically, creating parent directories.
func WriteFile(path string, data []byte) error {
	if path == "" {
		return errors.New(errors.ErrCodeInvalidPath, "empty output path")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailure, err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailure, err, "create temp file in %s", dir)
	}
	name := tmp.Name()
	defer os.Remove(name)

	if err := Write(tmp, path, data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailure, err, "close %s", name)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailure, err, "chmod %s", name)
	}
	if err := os.Rename(name, path); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailure, err, "rename to %s", path)
	}
	return nil
}
