package errors

import (
	"io/fs"
	"strings"
	"testing"
)

func TestInputError(t *testing.T) {
	err := NewInputError("cycling.txt", fs.ErrNotExist)

	var input *InputError
	if !As(err, &input) {
		t.Fatalf("As() failed for %v", err)
	}
	if input.Path != "cycling.txt" {
		t.Errorf("Path = %q, want %q", input.Path, "cycling.txt")
	}
	if !Is(err, fs.ErrNotExist) {
		t.Error("Is(err, fs.ErrNotExist) = false, want true")
	}
	if !strings.Contains(err.Error(), "cycling.txt") {
		t.Errorf("Error() = %q, missing path", err.Error())
	}
}

func TestMalformedInputError(t *testing.T) {
	err := NewMalformedInputError("cycling.txt", 12, "row has 3 columns, header has 5")

	var malformed *MalformedInputError
	if !As(err, &malformed) {
		t.Fatalf("As() failed for %v", err)
	}
	if malformed.Line != 12 {
		t.Errorf("Line = %d, want 12", malformed.Line)
	}
	if !strings.Contains(err.Error(), ":12:") {
		t.Errorf("Error() = %q, missing line number", err.Error())
	}
}

func TestMalformedInputErrorWithoutPath(t *testing.T) {
	err := NewMalformedInputError("", 3, "bad row")
	if strings.Contains(err.Error(), "::") {
		t.Errorf("Error() = %q, malformed without path", err.Error())
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Error() = %q, missing line number", err.Error())
	}
}

func TestOutputError(t *testing.T) {
	cause := New("disk full")
	err := NewOutputError("save figure", "figures/fig_top_riders.png", cause)

	var output *OutputError
	if !As(err, &output) {
		t.Fatalf("As() failed for %v", err)
	}
	if output.Op != "save figure" {
		t.Errorf("Op = %q, want %q", output.Op, "save figure")
	}
	if !Is(err, cause) {
		t.Error("Is(err, cause) = false, want true")
	}
}

func TestWarnHandler(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(nil)

	w := NewEmptyGroupWarning("mount", "sprinter")
	Warn(w)

	if len(got) != 1 {
		t.Fatalf("handler received %d warnings, want 1", len(got))
	}
	var eg *EmptyGroupWarning
	if !As(got[0], &eg) {
		t.Fatalf("warning type = %T, want EmptyGroupWarning", got[0])
	}
	if eg.StageClass != "mount" || eg.RiderClass != "sprinter" {
		t.Errorf("warning = %+v, want mount/sprinter", eg)
	}
}

func TestWarnNilHandlerDoesNotPanic(t *testing.T) {
	SetWarningHandler(nil)
	defer SetWarningHandler(func(error) {})
	Warn(NewMissingColumnWarning("all_riders", "top riders view"))
}
