package util

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/natefinch/atomic"
)

// ErrorKind classifies a failed sysfs access.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindNotFound
	KindPermissionDenied
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindIO:
		return "I/O error"
	default:
		return "unexpected error"
	}
}

// SysfsError is returned by every failed read or write of a sysfs attribute.
type SysfsError struct {
	Op   string
	Path string
	Kind ErrorKind
	Err  error
}

func (e *SysfsError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *SysfsError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a SysfsError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var sysfsErr *SysfsError
	if errors.As(err, &sysfsErr) {
		return sysfsErr.Kind == kind
	}
	return false
}

func newSysfsError(op string, path string, err error) *SysfsError {
	return &SysfsError{
		Op:   op,
		Path: path,
		Kind: classify(err),
		Err:  err,
	}
}

func classify(err error) ErrorKind {
	var errno syscall.Errno
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.As(err, &errno), errors.As(err, &pathErr):
		return KindIO
	default:
		return KindUnexpected
	}
}

// ReadValue reads the whole attribute at path and returns it without surrounding whitespace.
func ReadValue(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", newSysfsError("read", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteValue writes value to the attribute at path with a single write call.
// The file is never created, sysfs attributes exist or they don't.
func WriteValue(path string, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return newSysfsError("write", path, err)
	}
	_, err = f.Write([]byte(value))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return newSysfsError("write", path, err)
	}
	return nil
}

func ReadIntFromFile(path string) (value int, err error) {
	text, err := ReadValue(path)
	if err != nil {
		return -1, err
	}
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	value, err = strconv.Atoi(text)
	if err != nil {
		return -1, err
	}
	return value, nil
}

// WriteIntToFile write a single integer to a sysfs attribute
func WriteIntToFile(value int64, path string) error {
	evaluatedPath, err := resolvePath(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	return WriteValue(path, strconv.FormatInt(value, 10))
}

func resolvePath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// WriteFileAtomic replaces the file at path with data, so concurrent
// readers see either the old or the new content. Not usable on sysfs.
func WriteFileAtomic(path string, data []byte) error {
	evaluatedPath, err := resolvePath(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ModTime returns the modification time of path, or the zero time
// together with the error if it cannot be determined.
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// ReadValueOr reads the attribute at path, returning fallback on any error
func ReadValueOr(path string, fallback string) string {
	value, err := ReadValue(path)
	if err != nil {
		return fallback
	}
	return value
}
