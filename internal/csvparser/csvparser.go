// Package csvparser tokenizes delimited statement exports and lifts their
// rows into RawTransactions through a user-overridable column mapping.
// It never interprets values while tokenizing; interpretation happens in the
// lift step, which drops malformed rows silently like the OFX parser does.
package csvparser

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Document is a tokenized delimited file: the first line as headers, the
// rest as rows. Values are raw strings; nothing has been interpreted yet.
type Document struct {
	Headers []string
	Rows    [][]string
}

// ParseDocument tokenizes a delimited text blob. The delimiter is
// auto-detected from the header line: more semicolons than commas means
// semicolon-delimited. Quoted fields may contain the delimiter, and a
// doubled quote inside a quoted field is an escaped literal quote.
func ParseDocument(r io.Reader) (Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("error reading CSV input: %w", err)
	}

	lines := splitLines(string(content))
	if len(lines) == 0 {
		return Document{}, nil
	}

	delimiter := detectDelimiter(lines[0])
	doc := Document{
		Headers: splitLine(lines[0], delimiter),
	}
	for _, line := range lines[1:] {
		doc.Rows = append(doc.Rows, splitLine(line, delimiter))
	}

	log.WithFields(logrus.Fields{
		"headers":   len(doc.Headers),
		"rows":      len(doc.Rows),
		"delimiter": string(delimiter),
	}).Debug("Tokenized delimited document")

	return doc, nil
}

// splitLines normalizes line endings and discards blank lines.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// detectDelimiter compares comma and semicolon counts in the header line.
func detectDelimiter(headerLine string) rune {
	if strings.Count(headerLine, ";") > strings.Count(headerLine, ",") {
		return ';'
	}
	return ','
}

// splitLine tokenizes one line honoring quoted fields. Fields are trimmed.
func splitLine(line string, delimiter rune) []string {
	var (
		result   []string
		current  strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		char := runes[i]

		if char == '"' {
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
			continue
		}

		if char == delimiter && !inQuotes {
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}

		current.WriteRune(char)
	}

	result = append(result, strings.TrimSpace(current.String()))
	return result
}
