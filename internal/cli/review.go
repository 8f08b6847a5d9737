package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/seedguard/pkg/scan"
	"github.com/bastiangx/seedguard/pkg/scanstate"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89dceb")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
)

// DefaultPreviewLength is how many characters of a comment are shown.
const DefaultPreviewLength = 100

// Deleter removes flagged comments. *scan.Scanner satisfies it.
type Deleter interface {
	DeleteFlagged(ctx context.Context, flagged []scan.Flagged) (int, error)
}

// Reviewer shows flagged comments and asks which ones to delete.
type Reviewer struct {
	deleter       Deleter
	in            *bufio.Scanner
	out           io.Writer
	previewLength int
}

// NewReviewer creates a Reviewer. previewLength below 1 uses DefaultPreviewLength.
func NewReviewer(deleter Deleter, in io.Reader, out io.Writer, previewLength int) *Reviewer {
	if previewLength < 1 {
		previewLength = DefaultPreviewLength
	}
	return &Reviewer{
		deleter:       deleter,
		in:            bufio.NewScanner(in),
		out:           out,
		previewLength: previewLength,
	}
}

// PrintReport writes the scan summary.
func (r *Reviewer) PrintReport(report *scan.Report) {
	fmt.Fprintln(r.out, headerStyle.Render("Scan complete"))
	if report.LastScan != nil {
		fmt.Fprintf(r.out, "previous scan:      %s (%s)\n",
			scanstate.FormatForDisplay(report.LastScan), humanize.Time(*report.LastScan))
	}
	fmt.Fprintf(r.out, "resources scanned:  %s\n", humanize.Comma(int64(report.Resources)))
	fmt.Fprintf(r.out, "comments scanned:   %s\n", humanize.Comma(int64(report.Scanned)))
	fmt.Fprintf(r.out, "flagged comments:   %s\n", errStyle.Render(humanize.Comma(int64(len(report.Flagged)))))
	fmt.Fprintf(r.out, "next scan only checks comments after %s\n", scanstate.FormatForDisplay(&report.RunStarted))
}

// Review lists flagged comments and applies the chosen action.
// It returns how many comments were deleted.
func (r *Reviewer) Review(ctx context.Context, flagged []scan.Flagged) (int, error) {
	if len(flagged) == 0 {
		return 0, nil
	}
	r.list(flagged)

	for {
		fmt.Fprintf(r.out, "\n%s\n1. delete all flagged comments\n2. choose comments to delete\n3. delete nothing\nchoice (1/2/3): ",
			promptStyle.Render("What should be done?"))
		choice, ok := r.readLine()
		if !ok {
			return 0, r.in.Err()
		}
		switch choice {
		case "1":
			return r.delete(ctx, flagged)
		case "2":
			return r.selectAndDelete(ctx, flagged)
		case "3":
			fmt.Fprintln(r.out, "nothing deleted")
			return 0, nil
		default:
			fmt.Fprintln(r.out, errStyle.Render("invalid choice, enter 1, 2 or 3"))
		}
	}
}

func (r *Reviewer) list(flagged []scan.Flagged) {
	fmt.Fprintf(r.out, "\n%s\n", promptStyle.Render("Comments that may contain a seed phrase:"))
	for i, f := range flagged {
		fmt.Fprintf(r.out, "\n%s\n", headerStyle.Render(fmt.Sprintf("[%d] resource %s", i+1, f.Comment.ResourceID)))
		fmt.Fprintf(r.out, "author:  %s\n", f.Comment.Author)
		fmt.Fprintf(r.out, "comment: %s\n", r.preview(f.Comment.Text))
		if len(f.Phrases) > 0 {
			fmt.Fprintf(r.out, "phrases: %s\n", errStyle.Render(strings.Join(f.Phrases, ", ")))
		}
		fmt.Fprintln(r.out, strings.Repeat("-", 80))
	}
}

// preview cuts text to previewLength characters.
func (r *Reviewer) preview(text string) string {
	runes := []rune(text)
	if len(runes) <= r.previewLength {
		return text
	}
	return string(runes[:r.previewLength]) + "..."
}

func (r *Reviewer) selectAndDelete(ctx context.Context, flagged []scan.Flagged) (int, error) {
	var (
		deleted int
		errs    error
	)
	done := make(map[int]bool)
	for {
		fmt.Fprintf(r.out, "\ncomment numbers to delete, comma separated (e.g. 1,3,5), or q to stop: ")
		line, ok := r.readLine()
		if !ok || strings.EqualFold(line, "q") {
			return deleted, errs
		}
		indices, err := parseIndices(line)
		if err != nil {
			fmt.Fprintln(r.out, errStyle.Render("could not read that, try again"))
			continue
		}
		indices = lo.Filter(indices, func(idx int, _ int) bool {
			return idx >= 1 && idx <= len(flagged) && !done[idx]
		})
		if len(indices) == 0 {
			fmt.Fprintln(r.out, errStyle.Render("no valid comment numbers, try again"))
			continue
		}

		picked := lo.Map(indices, func(idx int, _ int) scan.Flagged { return flagged[idx-1] })
		n, err := r.deleter.DeleteFlagged(ctx, picked)
		deleted += n
		if err != nil {
			log.Errorf("Some deletions failed: %v", err)
			errs = err
		}
		for _, idx := range indices {
			done[idx] = true
		}
		if len(done) == len(flagged) {
			return deleted, errs
		}

		fmt.Fprint(r.out, "delete more comments? (y/n): ")
		more, ok := r.readLine()
		if !ok || !strings.EqualFold(more, "y") {
			return deleted, errs
		}
	}
}

func (r *Reviewer) delete(ctx context.Context, flagged []scan.Flagged) (int, error) {
	fmt.Fprintln(r.out, "deleting all flagged comments...")
	n, err := r.deleter.DeleteFlagged(ctx, flagged)
	fmt.Fprintf(r.out, "deleted %s of %s comments\n", humanize.Comma(int64(n)), humanize.Comma(int64(len(flagged))))
	return n, err
}

func (r *Reviewer) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

// parseIndices reads "1, 3,5" into unique ints in input order.
func parseIndices(line string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return lo.Uniq(out), nil
}
