// Package issuecsv reads issue-tracker CSV exports into records.
//
// The default column layout is the GitLab "Export as CSV" schema:
//
//	 0 Issue ID            10 Locked
//	 1 URL                 11 Due Date
//	 2 Title               12 Created At (UTC)
//	 3 State               13 Updated At (UTC)
//	 4 Description         14 Closed At (UTC)
//	 5 Author              15 Milestone
//	 6 Author Username     16 Weight
//	 7 Assignee            17 Labels
//	 8 Assignee Username   18 Time Estimate
//	 9 Confidential        19 Time Spent
//
// Only ID, Title, Description and Milestone are read.
package issuecsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Sentinel errors for CSV loading.
var (
	ErrShortRow       = errors.New("row has too few columns")
	ErrInvalidColumns = errors.New("invalid column layout")
	ErrCSVParse       = errors.New("failed to parse CSV")
)

// Record is one issue row.
type Record struct {
	Line        int // 1-based line where the row starts
	ID          string
	Title       string
	Description string
	Milestone   string
}

// Columns maps record fields to zero-based CSV column indices.
type Columns struct {
	ID          int
	Title       int
	Description int
	Milestone   int
}

// DefaultColumns is the GitLab export layout.
var DefaultColumns = Columns{ID: 0, Title: 2, Description: 4, Milestone: 15}

// Validate rejects negative or duplicate indices.
func (c Columns) Validate() error {
	idx := map[string]int{
		"id":          c.ID,
		"title":       c.Title,
		"description": c.Description,
		"milestone":   c.Milestone,
	}
	seen := make(map[int]string, len(idx))
	for _, name := range []string{"id", "title", "description", "milestone"} {
		i := idx[name]
		if i < 0 {
			return fmt.Errorf("%w: %s column is negative (%d)", ErrInvalidColumns, name, i)
		}
		if other, dup := seen[i]; dup {
			return fmt.Errorf("%w: %s and %s share column %d", ErrInvalidColumns, other, name, i)
		}
		seen[i] = name
	}
	return nil
}

func (c Columns) width() int {
	return max(c.ID, c.Title, c.Description, c.Milestone) + 1
}

// ReadFile loads records from the CSV file at path. A missing file yields an
// error wrapping os.ErrNotExist.
func ReadFile(path string, cols Columns) ([]Record, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading issues: %w", err)
	}
	return Read(bytes.NewReader(data), cols)
}

// Read parses CSV from r, skipping the header row. Data ends at the first
// blank line outside a quoted field; rows after it are ignored.
func Read(r io.Reader, cols Columns) ([]Record, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading issues: %w", err)
	}
	data = truncateAtBlankLine(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCSVParse, err)
	}

	width := cols.width()
	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCSVParse, err)
		}

		line, _ := reader.FieldPos(0)
		if len(row) < width {
			return nil, fmt.Errorf("%w: line %d has %d, need %d", ErrShortRow, line, len(row), width)
		}
		records = append(records, Record{
			Line:        line,
			ID:          row[cols.ID],
			Title:       row[cols.Title],
			Description: row[cols.Description],
			Milestone:   row[cols.Milestone],
		})
	}

	return records, nil
}

// truncateAtBlankLine cuts data at the first empty line that is not inside
// a quoted field. encoding/csv would silently skip such lines.
//
// Quoting follows the reader's lazy rules: a field is quoted only when it
// starts with a quote, "" inside it is an escaped quote, and a quote not
// followed by a separator or line end is literal.
func truncateAtBlankLine(data []byte) []byte {
	inQuotes := false
	fieldStart := true
	lineStart := 0
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inQuotes {
			if c == '"' {
				switch {
				case i+1 < len(data) && data[i+1] == '"':
					i++
				case closesField(data[i+1:]):
					inQuotes = false
				}
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = fieldStart
		case ',':
			fieldStart = true
			continue
		case '\n':
			if lineStart > 0 && isBlank(data[lineStart:i]) {
				return data[:lineStart]
			}
			lineStart = i + 1
			fieldStart = true
			continue
		}
		fieldStart = false
	}
	return data
}

// closesField reports whether a quote followed by rest ends a quoted field.
func closesField(rest []byte) bool {
	return len(rest) == 0 || rest[0] == ',' || rest[0] == '\n' || rest[0] == '\r'
}

func isBlank(line []byte) bool {
	return len(bytes.TrimRight(line, "\r")) == 0
}
