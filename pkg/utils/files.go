package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) yield their first file.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	data, err = Decompress(strings.ToLower(filepath.Ext(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}
	return data, nil
}

// Decompress decodes data according to the file extension ext. Unknown
// extensions return data as is.
func Decompress(ext string, data []byte) ([]byte, error) {
	var (
		decoder io.ReadCloser
		err     error
	)

	// try to assert the compression type from the file extension
	switch ext {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		var r *zip.Reader
		if r, err = zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, errors.New("empty archive")
		}
		decoder, err = r.File[0].Open()
	case ".7z":
		var r *sevenzip.Reader
		if r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, errors.New("empty archive")
		}
		decoder, err = r.File[0].Open()
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	return io.ReadAll(decoder)
}
