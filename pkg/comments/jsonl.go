package comments

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/bastiangx/seedguard/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

// JSONLSource keeps comments in a file, one JSON object per line.
type JSONLSource struct {
	path string
	// MaxPerResource caps List results per resource. Zero means no cap.
	MaxPerResource int

	mu sync.Mutex
}

// NewJSONLSource returns a source backed by path. The file is read on every call.
func NewJSONLSource(path string, maxPerResource int) *JSONLSource {
	return &JSONLSource{path: path, MaxPerResource: maxPerResource}
}

// Path returns the backing file.
func (s *JSONLSource) Path() string {
	return s.path
}

func (s *JSONLSource) read() ([]Comment, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open comments %s: %w", s.path, err)
	}
	defer file.Close()

	var all []Comment
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var c Comment
		if err := json.Unmarshal(line, &c); err != nil {
			return nil, fmt.Errorf("decode comment at %s:%d: %w", s.path, lineNo, err)
		}
		all = append(all, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read comments %s: %w", s.path, err)
	}
	return all, nil
}

func (s *JSONLSource) write(all []Comment) error {
	return utils.WriteFileAtomic(s.path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		for _, c := range all {
			if err := enc.Encode(c); err != nil {
				return fmt.Errorf("encode comment %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

// Resources returns resource ids in order of first appearance. With
// activeSince set, a resource is kept only when its newest comment is
// strictly after activeSince.
func (s *JSONLSource) Resources(ctx context.Context, activeSince *time.Time) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	ids := lo.Compact(lo.Uniq(lo.Map(all, func(c Comment, _ int) string { return c.ResourceID })))
	if activeSince == nil {
		return ids, nil
	}

	newest := make(map[string]time.Time, len(ids))
	for _, c := range all {
		if c.PublishedAt.After(newest[c.ResourceID]) {
			newest[c.ResourceID] = c.PublishedAt
		}
	}
	active := lo.Filter(ids, func(id string, _ int) bool {
		return newest[id].After(*activeSince)
	})
	log.Debugf("%d of %d resources active since %s", len(active), len(ids), activeSince.Format(time.DateOnly))
	return active, nil
}

// List returns comments on resourceID, newest first.
func (s *JSONLSource) List(ctx context.Context, resourceID string, since *time.Time) ([]Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	out := lo.Filter(all, func(c Comment, _ int) bool {
		if c.ResourceID != resourceID {
			return false
		}
		return since == nil || c.PublishedAt.After(*since)
	})
	slices.SortStableFunc(out, func(a, b Comment) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	if s.MaxPerResource > 0 && len(out) > s.MaxPerResource {
		log.Debugf("Capping %s at %d comments (had %d)", resourceID, s.MaxPerResource, len(out))
		out = out[:s.MaxPerResource]
	}
	return out, nil
}

// Delete removes the comment with id and rewrites the file.
func (s *JSONLSource) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(all, func(c Comment) bool { return c.ID == id })
	if idx < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	return s.write(slices.Delete(all, idx, idx+1))
}
