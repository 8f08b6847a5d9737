package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	bip39 "github.com/vcvvvc/go-wallet-sdk/crypto/go-bip39"
)

const (
	// DefaultPath is used when Load is called with an empty path.
	DefaultPath = "english.txt"
	// BuiltinSource selects the embedded BIP39 English list instead of a file.
	BuiltinSource = "builtin"
	// maxLineSize bounds a single word list line.
	maxLineSize = 64 * 1024
)

// Load reads a newline-delimited word list into a Dictionary.
// Each line is trimmed and empty lines are dropped. No case folding happens here,
// the source file is expected to be lowercase already.
//
// The returned Dictionary is never nil. On failure it is empty and err is a
// *MissingResourceError or *ResourceReadError. Failures are logged.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		path = DefaultPath
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = &MissingResourceError{Path: path, Err: err}
		} else {
			err = &ResourceReadError{Path: path, Err: err}
		}
		log.Errorf("Dictionary load failed: %v", err)
		return New(nil), err
	}
	defer file.Close()

	dict, err := read(file)
	if err != nil {
		err = &ResourceReadError{Path: path, Err: err}
		log.Errorf("Dictionary load failed: %v", err)
		return New(nil), err
	}

	log.Infof("Loaded %d words from %s", dict.Len(), path)
	return dict, nil
}

// read scans r line by line. Any decoding failure discards the partial result.
func read(r io.Reader) (*Dictionary, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	dict := New(nil)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if !utf8.Valid(line) {
			return nil, fmt.Errorf("line %d is not valid UTF-8", lineNo)
		}
		dict.insert(strings.TrimSpace(string(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dict, nil
}

// Builtin returns the canonical 2048-word BIP39 English list.
func Builtin() *Dictionary {
	dict := New(bip39.GetWordList())
	log.Debugf("Builtin dictionary ready: %d words", dict.Len())
	return dict
}

// Open resolves a configured dictionary source. BuiltinSource selects the
// embedded list; anything else is treated as a file path and passed to Load.
func Open(source string) (*Dictionary, error) {
	if strings.EqualFold(strings.TrimSpace(source), BuiltinSource) {
		return Builtin(), nil
	}
	return Load(source)
}
