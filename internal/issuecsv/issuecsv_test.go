package issuecsv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const gitlabHeader = "Issue ID,URL,Title,State,Description,Author,Author Username,Assignee,Assignee Username,Confidential,Locked,Due Date,Created At (UTC),Updated At (UTC),Closed At (UTC),Milestone,Weight,Labels,Time Estimate,Time Spent\n"

// gitlabRow builds a 20-column row with the consumed columns filled.
func gitlabRow(id, title, description, milestone string) string {
	cols := make([]string, 20)
	cols[0] = id
	cols[1] = "https://gitlab.example.com/chess/-/issues/" + id
	cols[2] = title
	cols[3] = "Open"
	cols[4] = `"` + strings.ReplaceAll(description, `"`, `""`) + `"`
	cols[15] = milestone
	return strings.Join(cols, ",") + "\n"
}

func TestRead(t *testing.T) {
	t.Parallel()

	input := gitlabHeader +
		gitlabRow("1", "Board", "- **Storypoints**: 5\nko**: x **Abgeschlossen", "Sprint 1") +
		gitlabRow("2", "Moves", `say "hi"`, "Sprint 2")

	got, err := Read(strings.NewReader(input), DefaultColumns)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := []Record{
		{Line: 2, ID: "1", Title: "Board", Description: "- **Storypoints**: 5\nko**: x **Abgeschlossen", Milestone: "Sprint 1"},
		{Line: 4, ID: "2", Title: "Moves", Description: `say "hi"`, Milestone: "Sprint 2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_BlankLineEndsData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		title     string
		desc      string
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "quoted blank line stays in the field",
			title:     "Board",
			desc:      "first\n\nparagraph kept",
			wantTitle: "Board",
			wantDesc:  "first\n\nparagraph kept",
		},
		{
			name:      "bare quote in unquoted field",
			title:     `5" Brett`,
			desc:      "ko**: a **Abgeschlossen",
			wantTitle: `5" Brett`,
			wantDesc:  "ko**: a **Abgeschlossen",
		},
		{
			name:      "escaped and lazy quotes in quoted field",
			title:     "Board",
			desc:      `say "hi" to "x"`,
			wantTitle: "Board",
			wantDesc:  `say "hi" to "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := gitlabHeader +
				gitlabRow("1", tt.title, tt.desc, "M") +
				"\n" +
				gitlabRow("2", "Ignored", "after sentinel", "M")

			got, err := Read(strings.NewReader(input), DefaultColumns)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("Read() returned %d records, want 1: %+v", len(got), got)
			}
			if got[0].Title != tt.wantTitle || got[0].Description != tt.wantDesc {
				t.Errorf("Read() = %q / %q, want %q / %q", got[0].Title, got[0].Description, tt.wantTitle, tt.wantDesc)
			}
		})
	}
}

func TestTruncateAtBlankLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no blank line", "h\na,b\n", "h\na,b\n"},
		{"blank line cuts", "h\na\n\nb\n", "h\na\n"},
		{"crlf blank line cuts", "h\r\na\r\n\r\nb\r\n", "h\r\na\r\n"},
		{"quoted blank line kept", "h\n\"a\n\nb\"\n", "h\n\"a\n\nb\"\n"},
		{"bare quote is literal", "h\n5\" x,\"y\"\n\nz\n", "h\n5\" x,\"y\"\n"},
		{"doubled quote stays quoted", "h\n\"a\"\"\n\nb\"\n\nc\n", "h\n\"a\"\"\n\nb\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := string(truncateAtBlankLine([]byte(tt.input))); got != tt.want {
				t.Errorf("truncateAtBlankLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRead_CRLF(t *testing.T) {
	t.Parallel()

	input := strings.ReplaceAll(gitlabHeader+gitlabRow("1", "A", "x", "M"), "\n", "\r\n") + "\r\n" +
		strings.ReplaceAll(gitlabRow("2", "B", "y", "M"), "\n", "\r\n")

	got, err := Read(strings.NewReader(input), DefaultColumns)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("Read() = %+v, want only record 1", got)
	}
}

func TestRead_HeaderOnlyAndEmpty(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", gitlabHeader} {
		got, err := Read(strings.NewReader(input), DefaultColumns)
		if err != nil {
			t.Errorf("Read(%q) error = %v", input, err)
		}
		if len(got) != 0 {
			t.Errorf("Read(%q) = %v, want no records", input, got)
		}
	}
}

func TestRead_ShortRow(t *testing.T) {
	t.Parallel()

	input := gitlabHeader + "1,url,Title,Open,desc\n"
	_, err := Read(strings.NewReader(input), DefaultColumns)
	if !errors.Is(err, ErrShortRow) {
		t.Fatalf("Read() error = %v, want ErrShortRow", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err)
	}
}

func TestRead_CustomColumns(t *testing.T) {
	t.Parallel()

	input := "id,title,milestone,description\n7,Castle,M3,body\n"
	cols := Columns{ID: 0, Title: 1, Milestone: 2, Description: 3}

	got, err := Read(strings.NewReader(input), cols)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []Record{{Line: 2, ID: "7", Title: "Castle", Milestone: "M3", Description: "body"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestColumns_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cols    Columns
		wantErr bool
	}{
		{"default", DefaultColumns, false},
		{"negative", Columns{ID: -1, Title: 2, Description: 4, Milestone: 15}, true},
		{"duplicate", Columns{ID: 0, Title: 0, Description: 4, Milestone: 15}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cols.Validate()
			if tt.wantErr != errors.Is(err, ErrInvalidColumns) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file wraps ErrNotExist", func(t *testing.T) {
		t.Parallel()

		_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultColumns)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("ReadFile() error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "issues.csv")
		if err := os.WriteFile(path, []byte(gitlabHeader+gitlabRow("3", "T", "d", "M")), 0o644); err != nil {
			t.Fatalf("writing CSV: %v", err)
		}
		got, err := ReadFile(path, DefaultColumns)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != "3" {
			t.Errorf("ReadFile() = %+v", got)
		}
	})
}
