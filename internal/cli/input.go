// Package cli handles cmd line input for ad hoc seed phrase checks and for
// reviewing flagged comments after a scan.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/seedguard/pkg/detect"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

var (
	phraseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// prefixLimit caps how many words a "?prefix" lookup prints. A bare "?"
// lists the dictionary from the start.
const prefixLimit = 24

// InputHandler reads lines and reports whether each one looks like it
// contains a seed phrase. A line starting with "?" lists dictionary words
// with that prefix instead.
type InputHandler struct {
	detector     *detect.Detector
	in           io.Reader
	out          io.Writer
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler
func NewInputHandler(detector *detect.Detector, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{detector: detector, in: in, out: out}
}

// Start begins the interface loop. It returns nil when the input ends.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "seedguard CLI")
	fmt.Fprintf(h.out, "dictionary: %s words, min seed words: %d\n",
		humanize.Comma(int64(h.detector.Dictionary().Len())), h.detector.MinWords())
	fmt.Fprintln(h.out, "paste text and press Enter to check it, ?prefix to look up words (Ctrl+C to exit):")

	scanner := bufio.NewScanner(h.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	if prefix, ok := strings.CutPrefix(line, "?"); ok {
		h.lookup(strings.ToLower(strings.TrimSpace(prefix)))
		return
	}

	start := time.Now()
	res := h.detector.Analyze(line)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for request #%d", elapsed, h.requestCount)

	stats := dimStyle.Render(fmt.Sprintf("(%d tokens, %d dictionary words, longest run %d)",
		res.Tokens, res.Hits, res.LongestRun))
	if !res.Candidate {
		fmt.Fprintf(h.out, "%s %s\n", okStyle.Render("no seed phrase"), stats)
		return
	}
	fmt.Fprintf(h.out, "%s via %s %s\n", phraseStyle.Render("SEED PHRASE CANDIDATE"), res.Strategy, stats)
	if len(res.Phrases) == 0 {
		fmt.Fprintln(h.out, dimStyle.Render("  no contiguous phrase could be isolated"))
		return
	}
	for i, p := range res.Phrases {
		fmt.Fprintf(h.out, "%2d. %s\n", i+1, phraseStyle.Render(p))
	}
}

func (h *InputHandler) lookup(prefix string) {
	dict := h.detector.Dictionary()
	if prefix == "" {
		h.printWords(fmt.Sprintf("%s dictionary words:", humanize.Comma(int64(dict.Len()))), dict.Words())
		return
	}
	words := dict.WithPrefix(prefix)
	if len(words) == 0 {
		log.Warnf("No dictionary words for prefix: '%s'", prefix)
		return
	}
	h.printWords(fmt.Sprintf("%d dictionary words with prefix '%s':", len(words), prefix), words)
}

func (h *InputHandler) printWords(header string, words []string) {
	fmt.Fprintln(h.out, header)
	if len(words) > prefixLimit {
		words = words[:prefixLimit]
	}
	for i, w := range words {
		fmt.Fprintf(h.out, "%2d. %s\n", i+1, wordStyle.Render(w))
	}
}
