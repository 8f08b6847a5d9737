// Package scanstate remembers when the last comment scan finished,
// so the next scan only looks at newer comments.
package scanstate

import (
	"context"
	"time"
)

// DisplayLayout is how scan timestamps are shown to people.
const DisplayLayout = "2006-01-02 15:04:05"

// Store persists the last scan time. A nil time means no scan has been recorded.
type Store interface {
	LastScan(ctx context.Context) (*time.Time, error)
	SetLastScan(ctx context.Context, t time.Time) error
}

// FormatForDisplay renders t in local time, or "never" for nil.
func FormatForDisplay(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format(DisplayLayout)
}

type forceFull struct {
	Store
}

// ForceFull wraps store so LastScan always reports nothing. Writes still go through.
func ForceFull(store Store) Store {
	return forceFull{Store: store}
}

func (forceFull) LastScan(context.Context) (*time.Time, error) {
	return nil, nil
}
