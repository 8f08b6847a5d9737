package scanstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/bastiangx/seedguard/internal/utils"
	"github.com/charmbracelet/log"
)

type fileState struct {
	LastScanTime string `json:"last_scan_time"`
	ScanDate     string `json:"scan_date"`
}

// FileStore keeps the last scan time in a small JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LastScan returns nil when the file is missing or cannot be understood.
func (s *FileStore) LastScan(ctx context.Context) (*time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		log.Warnf("Could not read scan state %s: %v", s.path, err)
		return nil, nil
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Warnf("Could not decode scan state %s: %v", s.path, err)
		return nil, nil
	}
	if state.LastScanTime == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, state.LastScanTime)
	if err != nil {
		log.Warnf("Bad last_scan_time %q in %s: %v", state.LastScanTime, s.path, err)
		return nil, nil
	}
	return &t, nil
}

// SetLastScan atomically replaces the file with t.
func (s *FileStore) SetLastScan(ctx context.Context, t time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := utils.WriteFileAtomic(s.path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fileState{
			LastScanTime: t.UTC().Format(time.RFC3339Nano),
			ScanDate:     t.Local().Format(DisplayLayout),
		})
	})
	if err != nil {
		return fmt.Errorf("write scan state %s: %w", s.path, err)
	}
	return nil
}
