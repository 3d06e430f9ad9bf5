// Package dataset reads labeled message corpora from delimited text files.
package dataset

import (
	"encoding/csv"
	"fmt"
	"github.com/pkg/errors"
	"io"
	"os"
	"strings"
)

// Record is a single labeled message.
type Record struct {
	Label string
	Text  string
}

// SchemaError is returned when a file has a header, but the label and text columns cannot be
// identified from it.
type SchemaError struct {
	Path    string
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: cannot identify label and text columns in header %q", e.Path, e.Columns)
}

const bom = "\uFEFF"

// Load reads the records of the file at path. See Read.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening dataset %s", path)
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses a two column (label, text) delimited file. Files without a header are read
// positionally (see headerless); when a header is present the columns named label and text are
// used, falling back to position when there are exactly two columns. Rows with a missing label or blank text are
// dropped and the remaining text is trimmed.
func Read(r io.Reader, name string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing dataset %s", name)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], bom)
	}

	labelCol, textCol := 0, 1
	if !headerless(rows) {
		header := make([]string, len(rows[0]))
		for i, h := range rows[0] {
			header[i] = strings.ToLower(strings.TrimSpace(h))
		}
		labelCol, textCol = index(header, "label"), index(header, "text")
		if labelCol < 0 || textCol < 0 {
			if len(header) != 2 {
				return nil, &SchemaError{Path: name, Columns: header}
			}
			labelCol, textCol = 0, 1
		}
		rows = rows[1:]
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if labelCol >= len(row) || textCol >= len(row) {
			continue
		}
		l := strings.TrimSpace(row[labelCol])
		t := strings.TrimSpace(row[textCol])
		if len(l) == 0 || len(t) == 0 {
			continue
		}
		records = append(records, Record{Label: l, Text: t})
	}
	return records, nil
}

// headerless reports whether the first row is data rather than a header. A file is read with a
// header when its first row names the label and text columns, or when any row has more than two
// fields. Short rows say nothing about the header; they are dropped later.
func headerless(rows [][]string) bool {
	for _, row := range rows {
		if len(row) > 2 {
			return false
		}
	}
	first := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		first[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return index(first, "label") < 0 || index(first, "text") < 0
}

func index(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// Labels returns the label of every record.
func Labels(records []Record) []string {
	l := make([]string, len(records))
	for i, r := range records {
		l[i] = r.Label
	}
	return l
}

// Texts returns the text of every record.
func Texts(records []Record) []string {
	t := make([]string, len(records))
	for i, r := range records {
		t[i] = r.Text
	}
	return t
}
