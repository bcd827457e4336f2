package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/veloscope/stagereport/pkg/errors"
)

const sampleTable = `all_riders rider_class stage points stage_class
/ comment rows are skipped entirely
"TADEJ POGACAR" gc 1 50 mount
"MARK CAVENDISH" sprinter 2 50 flat
"TADEJ POGACAR" gc 3 30 hills
"WOUT VAN AERT" allrounder 2 20 flat
`

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRows int
		wantErr  bool
	}{
		{
			name:     "valid table with quotes and comments",
			input:    sampleTable,
			wantRows: 4,
			wantErr:  false,
		},
		{
			name: "blank lines are skipped",
			input: "rider_class stage points stage_class\n\ngc 1 50 mount\n\n" +
				"sprinter 2 10 flat\n",
			wantRows: 2,
			wantErr:  false,
		},
		{
			name:    "missing required header column",
			input:   "all_riders rider_class stage stage_class\nX gc 1 mount\n",
			wantErr: true,
		},
		{
			name:    "row column count mismatch",
			input:   "rider_class stage points stage_class\ngc 1 50\n",
			wantErr: true,
		},
		{
			name:    "non-numeric points",
			input:   "rider_class stage points stage_class\ngc 1 fifty mount\n",
			wantErr: true,
		},
		{
			name:    "unterminated quote",
			input:   "rider_class stage points stage_class\n\"gc 1 50 mount\n",
			wantErr: true,
		},
		{
			name:    "no header",
			input:   "/ only comments here\n",
			wantErr: true,
		},
		{
			name:    "header but no rows",
			input:   "rider_class stage points stage_class\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if ds.Len() != tt.wantRows {
				t.Errorf("Parse() rows = %d, want %d", ds.Len(), tt.wantRows)
			}
		})
	}
}

func TestParseQuotedRiderNames(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := ds.Records[0].Rider; got != "TADEJ POGACAR" {
		t.Errorf("Records[0].Rider = %q, want %q", got, "TADEJ POGACAR")
	}
	if !ds.HasRiders {
		t.Error("HasRiders = false, want true")
	}
}

func TestParseMalformedLineNumber(t *testing.T) {
	input := "rider_class stage points stage_class\ngc 1 50 mount\ngc 2 30\n"
	_, err := Parse(strings.NewReader(input))
	var malformed *errors.MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("Parse() error = %v, want MalformedInputError", err)
	}
	if malformed.Line != 3 {
		t.Errorf("MalformedInputError.Line = %d, want 3", malformed.Line)
	}
}

func TestParseWithoutRiderColumn(t *testing.T) {
	input := "rider_class stage points stage_class\ngc 1 50 mount\n"
	ds, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ds.HasRiders {
		t.Error("HasRiders = true, want false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no_such_table.txt"))
	var input *errors.InputError
	if !errors.As(err, &input) {
		t.Fatalf("Load() error = %v, want InputError", err)
	}
}

func TestLoadDeterminism(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycling.txt")
	if err := os.WriteFile(path, []byte(sampleTable), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(first.Records, second.Records) {
		t.Error("loading identical content twice yielded different records")
	}
	if !reflect.DeepEqual(first.RiderClasses(), second.RiderClasses()) {
		t.Error("loading identical content twice yielded different rider class order")
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{
			name: "plain fields",
			line: "gc 1 50 mount",
			want: []string{"gc", "1", "50", "mount"},
		},
		{
			name: "runs of whitespace collapse",
			line: "gc   1\t50   mount",
			want: []string{"gc", "1", "50", "mount"},
		},
		{
			name: "quoted field with spaces",
			line: `"TEAM SKY" gc 1 50 mount`,
			want: []string{"TEAM SKY", "gc", "1", "50", "mount"},
		},
		{
			name: "empty quoted field",
			line: `"" gc 1`,
			want: []string{"", "gc", "1"},
		},
		{
			name:    "unterminated quote",
			line:    `"TEAM SKY gc`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitFields(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitFields() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitFields() = %v, want %v", got, tt.want)
			}
		})
	}
}
