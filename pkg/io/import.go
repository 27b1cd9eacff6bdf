package io

import (
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/matzehuels/bpjson/pkg/errors"
)

// Read returns the contents of r, decompressing when name ends in ".zst".
func Read(r io.Reader, name string) ([]byte, error) {
	if !Compressed(name) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "read %s", name)
		}
		return data, nil
	}
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "zstd reader for %s", name)
	}
	defer dec.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, dec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decompress %s", name)
	}
	return buf.Bytes(), nil
}

// ReadFile reads path, decompressing ".zst" files. A missing file is
// reported with ErrCodeNotFound.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, path)
}
