package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-storycards/internal/yamlutil"
)

type columns struct {
	ID        int `yaml:"id"`
	Milestone int `yaml:"milestone"`
}

type sample struct {
	Input   string  `yaml:"input"`
	Columns columns `yaml:"columns"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		wantMsg string
	}{
		{
			name: "valid nested document",
			data: []byte("input: issues.csv\ncolumns:\n  id: 0\n  milestone: 15\n"),
			dest: &sample{},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &sample{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("input: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "unknown field rejected",
			data:    []byte("input: x\nsurprise: true\n"),
			dest:    &sample{},
			wantMsg: "yamlutil:",
		},
		{
			name:    "syntax error",
			data:    []byte("input: [unclosed"),
			dest:    &sample{},
			wantMsg: "yamlutil:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantMsg != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
					t.Fatalf("UnmarshalStrict() error = %v, want containing %q", err, tt.wantMsg)
				}
			default:
				if err != nil {
					t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
				}
				got := tt.dest.(*sample)
				if got.Input != "issues.csv" || got.Columns.Milestone != 15 {
					t.Errorf("UnmarshalStrict() = %+v", got)
				}
			}
		})
	}
}

func TestUnmarshalStrict_TooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("input: " + strings.Repeat("x", yamlutil.MaxInputSize))
	err := yamlutil.UnmarshalStrict(data, &sample{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	in := sample{Input: "issues.csv", Columns: columns{ID: 0, Milestone: 15}}
	data, err := yamlutil.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "milestone: 15") {
		t.Errorf("Marshal() = %q, want nested milestone key", data)
	}

	var out sample
	if err := yamlutil.UnmarshalStrict(data, &out); err != nil {
		t.Fatalf("UnmarshalStrict() error = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
