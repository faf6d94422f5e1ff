package cheatlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"armax-decoder/internal/armax"
)

// ParseFile reads a cheat listing from disk.
func ParseFile(path string, armaxText bool) ([]Cheat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cheatlist: open %s: %w", path, err)
	}
	defer f.Close()

	cheats, err := Parse(f, armaxText)
	if err != nil {
		return nil, fmt.Errorf("cheatlist: %s: %w", path, err)
	}
	return cheats, nil
}

// Parse splits a listing into cheats. Blank lines separate cheats. The first
// text line of a block names the cheat; later text and '#' lines become its
// comment. With armaxText set, XXXX-XXXX-XXXXX lines are codes; otherwise
// "XXXXXXXX YYYYYYYY" hex pairs are. Listings that are not UTF-8 are read as
// Windows-1252.
func Parse(r io.Reader, armaxText bool) ([]Cheat, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cheatlist: read: %w", err)
	}
	if !utf8.Valid(raw) {
		if raw, err = charmap.Windows1252.NewDecoder().Bytes(raw); err != nil {
			return nil, fmt.Errorf("cheatlist: decode windows-1252: %w", err)
		}
	}

	var (
		cheats   []Cheat
		cur      Cheat
		comments []string
		open     bool
	)
	flush := func() {
		if !open {
			return
		}
		if cur.Name == "" {
			cur.Name = DefaultName
		}
		cur.Comment = strings.Join(comments, "\n")
		cur.State = Parsed
		cheats = append(cheats, cur)
		cur, comments, open = Cheat{}, nil, false
	}

	sc := bufio.NewScanner(bytes.NewReader(raw))
	// The listing is already in memory, so no line can outgrow it.
	sc.Buffer(make([]byte, 0, 4096), len(raw)+1)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			flush()
			continue
		}
		if !open {
			cur.Line = lineNo
			open = true
		}

		if strings.HasPrefix(line, "#") {
			comments = append(comments, strings.TrimSpace(strings.TrimLeft(line, "#")))
			continue
		}

		words, isCode, err := parseCodeLine(line, armaxText)
		switch {
		case err != nil:
			if cur.Err == nil {
				cur.Err = fmt.Errorf("line %d: %w", lineNo, err)
			}
		case isCode:
			cur.Codes = append(cur.Codes, words...)
		case cur.Name == "" && len(cur.Codes) == 0:
			cur.Name = line
		default:
			comments = append(comments, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cheatlist: scan: %w", err)
	}
	flush()

	return cheats, nil
}

// parseCodeLine recognises a code line and decodes it. isCode is false for
// plain text.
func parseCodeLine(line string, armaxText bool) (words []uint32, isCode bool, err error) {
	if armaxText {
		if !armax.IsCode(line) {
			return nil, false, nil
		}
		addr, val, err := armax.ParseCode(line)
		if err != nil {
			return nil, true, err
		}
		return []uint32{addr, val}, true, nil
	}

	fields := strings.Fields(line)
	switch {
	case len(fields) == 2 && isHexOctet(fields[0]) && isHexOctet(fields[1]):
	case len(fields) == 1 && len(fields[0]) == 16 && isHex(fields[0]):
		fields = []string{fields[0][:8], fields[0][8:]}
	default:
		return nil, false, nil
	}

	words = make([]uint32, 2)
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 16, 32)
		if err != nil {
			return nil, true, fmt.Errorf("cheatlist: octet %q: %w", f, err)
		}
		words[i] = uint32(v)
	}
	return words, true, nil
}

func isHexOctet(s string) bool {
	return len(s) == 8 && isHex(s)
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return s != ""
}
