// Package emu stores emulator states on disk. A state file is a magic
// header, the xxhash of the state and the brotli compressed state.
package emu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
)

var magic = []byte("GBPPU\x01")

// ErrChecksum is returned when a state file does not match its checksum.
var ErrChecksum = errors.New("state checksum mismatch")

// state file naming convention:
// <name>.<timestamp>.state

// Save represents a state file.
type Save struct {
	Path      string    // the path to the state file
	Timestamp time.Time // when the state was saved
}

// Encode writes state to w in the state file format.
func Encode(w io.Writer, state []byte) error {
	header := make([]byte, len(magic)+8)
	copy(header, magic)
	binary.LittleEndian.PutUint64(header[len(magic):], xxhash.Sum64(state))
	if _, err := w.Write(header); err != nil {
		return err
	}

	bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
	if _, err := bw.Write(state); err != nil {
		return err
	}
	return bw.Close()
}

// Decode reads a state written by Encode.
func Decode(r io.Reader) ([]byte, error) {
	header := make([]byte, len(magic)+8)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading state header: %w", err)
	}
	if !bytes.Equal(header[:len(magic)], magic) {
		return nil, errors.New("not a state file")
	}

	state, err := io.ReadAll(brotli.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("decompressing state: %w", err)
	}
	if xxhash.Sum64(state) != binary.LittleEndian.Uint64(header[len(magic):]) {
		return nil, ErrChecksum
	}
	return state, nil
}

// NewSave writes state to a new state file for name in folder. The state
// is written to a temporary file first, and renamed once complete.
func NewSave(folder, name string, state []byte) (*Save, error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, err
	}

	now := time.Now()
	path := filepath.Join(folder, fmt.Sprintf("%s.%d.state", name, now.UnixNano()))
	f, err := os.CreateTemp(folder, fmt.Sprintf("%s.*", filepath.Base(path)))
	if err != nil {
		return nil, err
	}
	if err := Encode(f, state); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write state file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return nil, err
	}

	return &Save{Path: path, Timestamp: time.Unix(0, now.UnixNano())}, nil
}

// LoadSaves lists the state files for name in folder, newest first. If
// the folder does not exist, an empty slice is returned.
func LoadSaves(folder, name string) ([]*Save, error) {
	files, err := os.ReadDir(folder)
	if errors.Is(err, os.ErrNotExist) {
		return make([]*Save, 0), nil
	} else if err != nil {
		return nil, err
	}

	saves := make([]*Save, 0)
	for _, file := range files {
		if file.IsDir() || !isStateFile(file.Name()) || !strings.HasPrefix(file.Name(), name+".") {
			continue
		}
		saves = append(saves, &Save{
			Path:      filepath.Join(folder, file.Name()),
			Timestamp: time.Unix(0, parseTimestampFromFilename(file.Name())),
		})
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Timestamp.After(saves[j].Timestamp)
	})
	return saves, nil
}

// Bytes reads and verifies the state.
func (s *Save) Bytes() ([]byte, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	state, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return state, nil
}

// parseTimestampFromFilename parses the timestamp from the given filename.
// The filename is expected to be in the format of "<...>.<timestamp>.state".
// Where <timestamp> is the number of nanoseconds since the Unix epoch,
// and <...> is any string.
func parseTimestampFromFilename(filename string) int64 {
	// strip the file extension
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))

	// get the timestamp from the filename (the last part preceded by a dot)
	parts := strings.Split(filename, ".")
	n, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func isStateFile(filename string) bool {
	return strings.HasSuffix(filename, ".state")
}
