package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DirCheckResult is what CheckDirStatus found out about a directory.
type DirCheckResult struct {
	Exists   bool
	Writable bool
	Error    error
}

// FileExists reports whether path can be stat'ed.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFileAtomic creates the parent dir, streams write into a temp file next
// to path and renames it over path. Readers never see a half written file.
func WriteFileAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// SaveTOMLFile encodes data as TOML and atomically replaces filePath.
func SaveTOMLFile(data any, filePath string) error {
	err := WriteFileAtomic(filePath, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(data)
	})
	if err != nil {
		log.Errorf("Failed to save %s: %v", filePath, err)
	}
	return err
}

// GetAbsolutePath is for display: it never fails and shows "unknown" for "".
func GetAbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// CheckDirStatus creates dirPath when missing and checks it accepts a temp file.
func CheckDirStatus(dirPath string) DirCheckResult {
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		log.Warnf("Cannot create directory %s: %v", dirPath, err)
		return DirCheckResult{Error: err}
	}
	result := DirCheckResult{Exists: true}
	f, err := os.CreateTemp(dirPath, ".seedguard-write-*")
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dirPath, err)
		result.Error = err
		return result
	}
	f.Close()
	os.Remove(f.Name())
	result.Writable = true
	return result
}
