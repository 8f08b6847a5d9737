package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/seedguard/pkg/detect"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultMaxTextLength bounds the text of a single check request, in runes.
const DefaultMaxTextLength = 10000

// Server handles IPC for seed phrase checks
type Server struct {
	detector      *detect.Detector
	maxTextLength int

	decoder *msgpack.Decoder
	writer  *bufio.Writer
	encoder *msgpack.Encoder

	requests int
}

// NewServer creates a new server using stdin/stdout for IPC
func NewServer(detector *detect.Detector, maxTextLength int) *Server {
	return NewServerWithIO(detector, maxTextLength, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams.
func NewServerWithIO(detector *detect.Detector, maxTextLength int, r io.Reader, w io.Writer) *Server {
	if maxTextLength < 1 {
		maxTextLength = DefaultMaxTextLength
	}
	bw := bufio.NewWriter(w)
	return &Server{
		detector:      detector,
		maxTextLength: maxTextLength,
		decoder:       msgpack.NewDecoder(bufio.NewReader(r)),
		writer:        bw,
		encoder:       msgpack.NewEncoder(bw),
	}
}

// Start writes the ready marker and serves requests until the input closes.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return err
		}
		s.requests++
		if err := s.handleRequest(raw); err != nil {
			return err
		}
	}
}

func (s *Server) handleRequest(raw msgpack.RawMessage) error {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Errorf("Unmarshaling request: %v", err)
		return s.sendError("", "invalid msgpack request", 400)
	}

	switch req.Action {
	case "", "check":
		return s.handleCheck(req)
	case "info":
		return s.send(InfoResponse{
			ID:           req.ID,
			Status:       "ok",
			Words:        s.detector.Dictionary().Len(),
			MinSeedWords: s.detector.MinWords(),
		})
	case "health":
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleCheck(req Request) error {
	if !s.detector.Enabled() {
		return s.sendError(req.ID, "detection disabled: dictionary is empty", 503)
	}
	if utf8.RuneCountInString(req.Text) > s.maxTextLength {
		log.Debugf("Request %s: text too long", req.ID)
		return s.sendError(req.ID,
			fmt.Sprintf("text exceeds maximum length of %d characters", s.maxTextLength), 413)
	}

	start := time.Now()
	res := s.detector.Analyze(req.Text)
	elapsed := time.Since(start)

	phrases := res.Phrases
	if phrases == nil {
		phrases = []string{}
	}
	return s.send(CheckResponse{
		ID:        req.ID,
		Candidate: res.Candidate,
		Strategy:  res.Strategy.String(),
		Phrases:   phrases,
		Tokens:    res.Tokens,
		Hits:      res.Hits,
		TimeTaken: elapsed.Microseconds(),
	})
}

// send encodes one response and flushes it to the client.
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return err
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
		return err
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
