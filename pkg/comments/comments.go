// Package comments defines the comment model and where comments come from.
package comments

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a comment id is unknown to a source.
var ErrNotFound = errors.New("comment not found")

// Comment is one top-level comment on a resource (a video, a post).
type Comment struct {
	ID              string    `json:"id"`
	ResourceID      string    `json:"resource_id"`
	Text            string    `json:"text"`
	Author          string    `json:"author"`
	AuthorChannelID string    `json:"author_channel_id,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	LikeCount       int       `json:"like_count"`
}

// Source lists and removes comments.
type Source interface {
	// Resources returns the ids of resources that carry comments. A non-nil
	// activeSince keeps only resources with a comment published after it.
	Resources(ctx context.Context, activeSince *time.Time) ([]string, error)
	// List returns comments on resourceID. A nil since lists everything,
	// otherwise only comments published strictly after since.
	List(ctx context.Context, resourceID string, since *time.Time) ([]Comment, error)
	// Delete removes one comment. Unknown ids return ErrNotFound.
	Delete(ctx context.Context, id string) error
}
