package primes

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var ErrCorruptMirror = errors.New("prime mirror is corrupt")

// Store persists the prime cache. Implementations keep the values strictly ascending.
type Store interface {
	Load() ([]uint64, error)
	Append(values []uint64) error
	Reset(values []uint64) error
}

// FileStore keeps primes as newline-delimited decimals, one per line.
// Every access holds an advisory OS lock so processes sharing a mirror
// never interleave partial lines.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
	}
}

func (f *FileStore) Path() string {
	return f.path
}

// Load returns os.ErrNotExist (wrapped) for a missing mirror and
// ErrCorruptMirror for anything that is not an ascending list starting at 2, 3.
func (f *FileStore) Load() ([]uint64, error) {
	file, openErr := os.Open(f.path)
	if openErr != nil {
		return nil, openErr
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	if lockErr := lockFile(file, false); lockErr != nil {
		return nil, fmt.Errorf("could not lock %s: %w", f.path, lockErr)
	}
	defer func() {
		_ = unlockFile(file)
	}()

	values := make([]uint64, 0, 1024)
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, parseErr := strconv.ParseUint(text, 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrCorruptMirror, line, text)
		}
		if len(values) > 0 && v <= values[len(values)-1] {
			return nil, fmt.Errorf("%w: line %d: %d is not ascending", ErrCorruptMirror, line, v)
		}
		values = append(values, v)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("could not read %s: %w", f.path, scanErr)
	}
	if len(values) < 2 || values[0] != 2 || values[1] != 3 {
		return nil, fmt.Errorf("%w: mirror must start with 2 and 3", ErrCorruptMirror)
	}

	return values, nil
}

func (f *FileStore) Append(values []uint64) error {
	if len(values) == 0 {
		return nil
	}
	file, openErr := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if openErr != nil {
		return openErr
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	return f.writeLocked(file, values, false)
}

func (f *FileStore) Reset(values []uint64) error {
	file, openErr := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if openErr != nil {
		return openErr
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	return f.writeLocked(file, values, true)
}

func (f *FileStore) writeLocked(file *os.File, values []uint64, truncate bool) error {
	if lockErr := lockFile(file, true); lockErr != nil {
		return fmt.Errorf("could not lock %s: %w", f.path, lockErr)
	}
	defer func() {
		_ = unlockFile(file)
	}()

	if truncate {
		if truncateErr := file.Truncate(0); truncateErr != nil {
			return truncateErr
		}
	}

	w := bufio.NewWriter(file)
	for _, v := range values {
		_, _ = w.WriteString(strconv.FormatUint(v, 10))
		_ = w.WriteByte('\n')
	}
	return w.Flush()
}
