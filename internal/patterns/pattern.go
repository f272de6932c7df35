// Package patterns parses obstacle pattern catalogs.
//
// A catalog file is a stream of whitespace-delimited tokens: the lane count,
// then any number of blocks made of a row count followed by that many rows.
// A row count of zero ends the catalog. Each row has exactly one symbol per
// lane: '#' is a wall, 'o' is a hurdle, anything else is empty.
package patterns

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Lane count bounds accepted by the parser.
const (
	LanesMin = 3
	LanesMax = 16
)

// Errors returned by Parse. Use errors.Is to classify a failure.
var (
	ErrLaneCount    = errors.New("number of lanes out of bounds")
	ErrRowWidth     = errors.New("incorrect length of pattern row")
	ErrRowCount     = errors.New("invalid pattern length")
	ErrEmptyCatalog = errors.New("expected at least one pattern")
	ErrTruncated    = errors.New("unexpected end of pattern data")
)

// Symbol is the content of one pattern cell.
type Symbol uint8

const (
	SymbolNone Symbol = iota
	SymbolWall
	SymbolHurdle
)

// String returns the file representation of the symbol.
func (s Symbol) String() string {
	switch s {
	case SymbolWall:
		return "#"
	case SymbolHurdle:
		return "o"
	default:
		return "."
	}
}

// ParseSymbol maps a file character to a symbol.
func ParseSymbol(c byte) Symbol {
	switch c {
	case '#':
		return SymbolWall
	case 'o':
		return SymbolHurdle
	default:
		return SymbolNone
	}
}

// Pattern is a rectangular obstacle template: Rows[i][k] is the symbol of
// row i (top to bottom) in pattern lane k.
type Pattern struct {
	Rows [][]Symbol
}

// Len returns the number of rows (timeline positions) the pattern spans.
func (p Pattern) Len() int {
	return len(p.Rows)
}

// String renders the pattern back into its file rows.
func (p Pattern) String() string {
	var sb strings.Builder
	for i, row := range p.Rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, s := range row {
			sb.WriteString(s.String())
		}
	}
	return sb.String()
}

// Catalog is a parsed pattern file.
type Catalog struct {
	Name     string
	Lanes    int
	Patterns []Pattern

	path string // Set when loaded from disk
}

// ParseError reports which token of the input was rejected.
type ParseError struct {
	Token int    // 1-based token index
	Text  string // The offending token, if any
	Err   error
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("patterns: token %d: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("patterns: token %d %q: %v", e.Token, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// tokenizer yields whitespace-delimited tokens and counts them.
type tokenizer struct {
	sc    *bufio.Scanner
	count int
}

func (t *tokenizer) next() (string, bool) {
	if !t.sc.Scan() {
		return "", false
	}
	t.count++
	return t.sc.Text(), true
}

func (t *tokenizer) fail(text string, err error) error {
	return &ParseError{Token: t.count, Text: text, Err: err}
}

func (t *tokenizer) number(missing error) (int, string, error) {
	tok, ok := t.next()
	if !ok {
		if err := t.sc.Err(); err != nil {
			return 0, "", fmt.Errorf("patterns: read: %w", err)
		}
		return 0, "", t.fail("", missing)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, tok, t.fail(tok, missing)
	}
	return n, tok, nil
}

// Parse reads a catalog from r.
func Parse(r io.Reader) (*Catalog, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	tok := &tokenizer{sc: sc}

	lanes, text, err := tok.number(ErrLaneCount)
	if err != nil {
		return nil, err
	}
	if lanes < LanesMin || lanes > LanesMax {
		return nil, tok.fail(text, fmt.Errorf("%w: %d not in [%d, %d]", ErrLaneCount, lanes, LanesMin, LanesMax))
	}

	cat := &Catalog{Lanes: lanes}
	for {
		plen, text, err := tok.number(ErrTruncated)
		if err != nil {
			return nil, err
		}
		if plen == 0 {
			break
		}
		if plen < 0 {
			return nil, tok.fail(text, ErrRowCount)
		}

		// The row count is untrusted; rows are only allocated as they are read.
		p := Pattern{Rows: make([][]Symbol, 0, min(plen, 64))}
		for j := 0; j < plen; j++ {
			row, ok := tok.next()
			if !ok {
				if err := sc.Err(); err != nil {
					return nil, fmt.Errorf("patterns: read: %w", err)
				}
				return nil, tok.fail("", ErrTruncated)
			}
			if len(row) != lanes {
				return nil, tok.fail(row, fmt.Errorf("%w: got %d, want %d", ErrRowWidth, len(row), lanes))
			}
			symbols := make([]Symbol, lanes)
			for k := 0; k < lanes; k++ {
				symbols[k] = ParseSymbol(row[k])
			}
			p.Rows = append(p.Rows, symbols)
		}
		cat.Patterns = append(cat.Patterns, p)
	}

	if len(cat.Patterns) == 0 {
		return nil, tok.fail("", ErrEmptyCatalog)
	}
	return cat, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Catalog, error) {
	return Parse(strings.NewReader(s))
}

// Load reads and parses a catalog file. The catalog is named after the file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("patterns: open %s: %w", path, err)
	}
	defer f.Close()

	cat, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cat.Name = nameFromPath(path)
	cat.path = path
	return cat, nil
}
