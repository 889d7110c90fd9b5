package export

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// FixedWidthExporter renders each field left-justified in a column of fixed
// width, truncating longer values. Columns are not delimited.
type FixedWidthExporter struct {
	widths map[string]int
}

// NewFixedWidthExporter builds an exporter with a width per header.
func NewFixedWidthExporter(widths map[string]int) *FixedWidthExporter {
	return &FixedWidthExporter{widths: widths}
}

// Render writes one header line and one line per row.
func (e *FixedWidthExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("fixed-width export requires at least one header")
	}
	for _, header := range data.Headers {
		if e.widths[header] <= 0 {
			return nil, fmt.Errorf("no width configured for column %q", header)
		}
	}
	buf := &bytes.Buffer{}
	e.writeLine(buf, data.Headers, func(header string) string { return header })
	for _, row := range data.Rows {
		e.writeLine(buf, data.Headers, func(header string) string { return row[header] })
	}
	return buf.Bytes(), nil
}

func (e *FixedWidthExporter) writeLine(buf *bytes.Buffer, headers []string, value func(string) string) {
	for _, header := range headers {
		buf.WriteString(Pad(value(header), e.widths[header]))
	}
	buf.WriteString("\n")
}

// Pad truncates or right-pads s with spaces to exactly width runes.
func Pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}
