package service

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
)

type catalogColumn int

const (
	columnCode catalogColumn = iota
	columnLabel
	columnLevel
)

// catalogHeaders lists the accepted header spellings per column, in priority
// order. Matching is case-insensitive and the first hit wins.
var catalogHeaders = []struct {
	column    catalogColumn
	spellings []string
}{
	{columnCode, []string{"id", "codigo", "código", "code", "cod", "subject", "asignatura"}},
	{columnLabel, []string{"siglas", "sigla", "label", "short", "abbr", "abreviatura", "nombre", "name"}},
	{columnLevel, []string{"nivel", "level", "curso", "grade", "grado"}},
}

// parseCatalog reads a header row followed by subject rows. It returns the
// accepted subjects and the number of skipped rows.
func parseCatalog(r io.Reader) ([]models.Subject, int, error) {
	buffered := bufio.NewReader(r)
	head, err := buffered.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrEmptyCatalog.Code, appErrors.ErrEmptyCatalog.Status, "catalog file could not be read")
	}

	reader := csv.NewReader(buffered)
	reader.Comma = detectDelimiter(string(head))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrEmptyCatalog.Code, appErrors.ErrEmptyCatalog.Status, "catalog file has no header row")
	}
	columns := resolveCatalogColumns(header)

	subjects := make([]models.Subject, 0)
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, appErrors.Wrap(err, appErrors.ErrEmptyCatalog.Code, appErrors.ErrEmptyCatalog.Status, "catalog file is not valid delimited text")
		}
		code := field(record, columns, columnCode)
		label := field(record, columns, columnLabel)
		if code == "" && label == "" {
			skipped++
			continue
		}
		subjects = append(subjects, models.Subject{
			ID:    code,
			Code:  code,
			Label: label,
			Level: field(record, columns, columnLevel),
		})
	}
	return subjects, skipped, nil
}

func resolveCatalogColumns(header []string) map[catalogColumn]int {
	normalized := make([]string, len(header))
	for i, name := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	}
	columns := make(map[catalogColumn]int, len(catalogHeaders))
	for _, entry := range catalogHeaders {
	search:
		for _, spelling := range entry.spellings {
			for i, name := range normalized {
				if name == spelling {
					columns[entry.column] = i
					break search
				}
			}
		}
	}
	return columns
}

func field(record []string, columns map[catalogColumn]int, column catalogColumn) string {
	idx, ok := columns[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func detectDelimiter(head string) rune {
	line := head
	if idx := strings.IndexAny(head, "\r\n"); idx >= 0 {
		line = head[:idx]
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, candidate := range []rune{';', '\t'} {
		if n := strings.Count(line, string(candidate)); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}
