package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and fixtures
// ---------------------------------------------------------------------------

// testEnv returns an Environment with captured output and the given
// variables as the only process environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, stdout, stderr
}

const exportHeader = "Issue ID,URL,Title,State,Description,Author,Author Username,Assignee," +
	"Assignee Username,Confidential,Locked,Due Date,Created At (UTC),Updated At (UTC)," +
	"Closed At (UTC),Milestone,Weight,Labels,Time Estimate,Time Spent"

const storyDescription = "- **Storypoints**: 5\n" +
	"- **Risiko**: 2\n\n" +
	"some text\n\n" +
	"**Abgeschlossen wenn**\n" +
	"- [x] done item\n" +
	"- [ ] pending item\n"

// exportRow builds a 20-column GitLab export row.
func exportRow(id, title, description, milestone string) string {
	cols := make([]string, 20)
	cols[0], cols[2], cols[4], cols[15] = id, title, description, milestone
	for i, c := range cols {
		cols[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(cols, ",")
}

// writeExport writes a CSV export with the given rows and returns its path.
func writeExport(t *testing.T, dir string, rows ...string) string {
	t.Helper()
	path := filepath.Join(dir, "issues.csv")
	content := exportHeader + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing export: %v", err)
	}
	return path
}

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
