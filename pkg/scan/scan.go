// Package scan runs the detector over new comments and removes the ones
// a reviewer confirms.
package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bastiangx/seedguard/pkg/comments"
	"github.com/bastiangx/seedguard/pkg/detect"
	"github.com/bastiangx/seedguard/pkg/scanstate"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// ErrDetectionDisabled is returned when the detector has no dictionary to match against.
var ErrDetectionDisabled = errors.New("seed phrase detection disabled: dictionary is empty")

// Flagged is a comment the detector classified as a seed phrase candidate.
type Flagged struct {
	Comment  comments.Comment
	Phrases  []string
	Strategy detect.Strategy
}

// Report summarises one scan run.
type Report struct {
	RunStarted time.Time
	LastScan   *time.Time
	Resources  int
	Scanned    int
	Flagged    []Flagged
}

// Scanner ties a comment source, a scan state store and a detector together.
type Scanner struct {
	Source   comments.Source
	Store    scanstate.Store
	Detector *detect.Detector

	// MaxResourceAge skips resources whose newest comment is older than this.
	// Zero scans every resource.
	MaxResourceAge time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Scanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Run scans every comment published after the last recorded scan and then
// records this run's start time as the new last scan.
func (s *Scanner) Run(ctx context.Context) (*Report, error) {
	if s.Detector == nil || !s.Detector.Enabled() {
		return nil, ErrDetectionDisabled
	}

	report := &Report{RunStarted: s.now()}

	last, err := s.Store.LastScan(ctx)
	if err != nil {
		return nil, fmt.Errorf("read last scan: %w", err)
	}
	report.LastScan = last
	if last == nil {
		log.Info("No previous scan recorded, scanning all comments")
	} else {
		log.Infof("Scanning comments published after %s", scanstate.FormatForDisplay(last))
	}

	var activeSince *time.Time
	if s.MaxResourceAge > 0 {
		cutoff := report.RunStarted.Add(-s.MaxResourceAge)
		activeSince = &cutoff
		log.Infof("Only scanning resources active since %s", scanstate.FormatForDisplay(activeSince))
	}

	resources, err := s.Source.Resources(ctx, activeSince)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	if len(resources) == 0 {
		log.Warn("No resources found, nothing to scan")
		return report, nil
	}
	report.Resources = len(resources)

	for _, id := range resources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		list, err := s.Source.List(ctx, id, last)
		if err != nil {
			log.Errorf("Failed to list comments for %s: %v", id, err)
			continue
		}
		log.Debugf("Resource %s: %d new comments", id, len(list))
		report.Scanned += len(list)

		for _, c := range list {
			res := s.Detector.Analyze(c.Text)
			if !res.Candidate {
				continue
			}
			log.Warnf("Seed phrase candidate from %s (comment %s, %s)", c.Author, c.ID, res.Strategy)
			report.Flagged = append(report.Flagged, Flagged{
				Comment:  c,
				Phrases:  res.Phrases,
				Strategy: res.Strategy,
			})
		}
	}

	if err := s.Store.SetLastScan(ctx, report.RunStarted); err != nil {
		return report, fmt.Errorf("record scan time: %w", err)
	}
	log.Infof("Scan done: %s resources, %s comments, %s flagged",
		humanize.Comma(int64(report.Resources)),
		humanize.Comma(int64(report.Scanned)),
		humanize.Comma(int64(len(report.Flagged))))
	return report, nil
}

// DeleteFlagged removes each flagged comment from the source. Failures are
// logged and collected; the remaining comments are still attempted.
func (s *Scanner) DeleteFlagged(ctx context.Context, flagged []Flagged) (int, error) {
	var (
		deleted int
		errs    []error
	)
	for _, f := range flagged {
		if err := s.Source.Delete(ctx, f.Comment.ID); err != nil {
			log.Errorf("Failed to delete comment %s: %v", f.Comment.ID, err)
			errs = append(errs, fmt.Errorf("delete %s: %w", f.Comment.ID, err))
			continue
		}
		log.Infof("Deleted comment %s", f.Comment.ID)
		deleted++
	}
	return deleted, errors.Join(errs...)
}
