package storycards

import (
	"errors"
	"io"

	"github.com/alnah/go-storycards/internal/issuecsv"
)

// ReadIssuesFile reads an issue export from path. A missing file returns an
// error wrapping os.ErrNotExist.
func ReadIssuesFile(path string, cols Columns) ([]Issue, error) {
	records, err := issuecsv.ReadFile(path, toIssueColumns(cols))
	if err != nil {
		return nil, convertCSVError(err)
	}
	return toIssues(records), nil
}

// ReadIssues reads an issue export from r. The header row is discarded and
// an empty line ends the data.
func ReadIssues(r io.Reader, cols Columns) ([]Issue, error) {
	records, err := issuecsv.Read(r, toIssueColumns(cols))
	if err != nil {
		return nil, convertCSVError(err)
	}
	return toIssues(records), nil
}

func toIssueColumns(c Columns) issuecsv.Columns {
	return issuecsv.Columns(c)
}

func toIssues(records []issuecsv.Record) []Issue {
	issues := make([]Issue, len(records))
	for i, r := range records {
		issues[i] = Issue(r)
	}
	return issues
}

// convertCSVError maps internal CSV errors to public errors.
func convertCSVError(err error) error {
	switch {
	case errors.Is(err, issuecsv.ErrShortRow):
		return wrapError(ErrShortRow, err)
	case errors.Is(err, issuecsv.ErrInvalidColumns):
		return wrapError(ErrInvalidColumns, err)
	case errors.Is(err, issuecsv.ErrCSVParse):
		return wrapError(ErrCSVParse, err)
	default:
		return err
	}
}
