package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidate delimiters in preference order for ties
var delimiters = []rune{',', ';', '\t'}

func parseCSV(data []byte) ([][]string, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return rows, nil
}

// decodeText strips a UTF-8 BOM, or decodes Windows-1251 when the payload is not UTF-8.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: decode cp1251: %w", ErrParse, err)
	}
	return string(decoded), nil
}

// sniffDelimiter picks the delimiter that splits the first lines into the most
// consistent number of columns. Quoted sections are ignored.
func sniffDelimiter(text string) rune {
	lines := sampleLines(text, 10)
	best, bestScore := delimiters[0], 0
	for _, d := range delimiters {
		score := delimiterScore(lines, d)
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

func sampleLines(text string, n int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == n {
			break
		}
	}
	return lines
}

// delimiterScore counts lines sharing the most common non-zero field count,
// weighted by that count.
func delimiterScore(lines []string, d rune) int {
	freq := make(map[int]int)
	for _, line := range lines {
		if c := countUnquoted(line, d); c > 0 {
			freq[c]++
		}
	}
	best := 0
	for count, lines := range freq {
		if score := lines*1000 + count; score > best {
			best = score
		}
	}
	return best
}

func countUnquoted(line string, d rune) int {
	n, quoted := 0, false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == d && !quoted:
			n++
		}
	}
	return n
}
