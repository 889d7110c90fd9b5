package export

import (
	"bytes"
	"fmt"
	"strings"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders Dataset records as delimited text with every field
// quoted and embedded quotes doubled.
type CSVExporter struct {
	Comma string
}

// NewCSVExporter builds a comma separated exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{Comma: ","}
}

// Render produces the header line followed by one line per row.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	comma := e.Comma
	if comma == "" {
		comma = ","
	}
	buf := &bytes.Buffer{}
	writeQuoted(buf, data.Headers, comma)
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		writeQuoted(buf, record, comma)
	}
	return buf.Bytes(), nil
}

func writeQuoted(buf *bytes.Buffer, fields []string, comma string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteString(comma)
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}
