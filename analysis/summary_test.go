package analysis

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/veloscope/stagereport/dataset"
	"github.com/veloscope/stagereport/pkg/errors"
)

// gridTable has 2 rider classes x 3 stage profiles x 2 rows per cell with
// hand-computable group means.
const gridTable = `all_riders rider_class stage points stage_class
A gc 1 10 flat
B gc 2 20 flat
A gc 3 30 hills
B gc 4 50 hills
A gc 5 60 mount
B gc 6 80 mount
C sprinter 1 40 flat
D sprinter 2 60 flat
C sprinter 3 10 hills
D sprinter 4 20 hills
C sprinter 5 0 mount
D sprinter 6 10 mount
`

func mustDataset(t *testing.T, input string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return ds
}

func TestGroupMeansHandComputed(t *testing.T) {
	ds := mustDataset(t, gridTable)
	gs := GroupMeans(ds)

	tests := []struct {
		stageClass string
		riderClass string
		wantMean   float64
		wantCount  int
	}{
		{"flat", "gc", 15, 2},
		{"hills", "gc", 40, 2},
		{"mount", "gc", 70, 2},
		{"flat", "sprinter", 50, 2},
		{"hills", "sprinter", 15, 2},
		{"mount", "sprinter", 5, 2},
	}

	for _, tt := range tests {
		c, ok := gs.Cell(tt.stageClass, tt.riderClass)
		if !ok {
			t.Errorf("Cell(%q, %q) missing", tt.stageClass, tt.riderClass)
			continue
		}
		if math.Abs(c.Mean-tt.wantMean) > 1e-12 {
			t.Errorf("Cell(%q, %q).Mean = %v, want %v", tt.stageClass, tt.riderClass, c.Mean, tt.wantMean)
		}
		if c.Count != tt.wantCount {
			t.Errorf("Cell(%q, %q).Count = %d, want %d", tt.stageClass, tt.riderClass, c.Count, tt.wantCount)
		}
	}

	if got := len(gs.Cells()); got != 6 {
		t.Errorf("len(Cells()) = %d, want 6", got)
	}
}

func TestGroupMeansSingleGroup(t *testing.T) {
	// One class, one profile: the group mean is the arithmetic mean of the
	// points column.
	ds := mustDataset(t, `rider_class stage points stage_class
gc 1 10 flat
gc 2 20 flat
gc 3 60 flat
`)
	gs := GroupMeans(ds)
	c, ok := gs.Cell("flat", "gc")
	if !ok {
		t.Fatal("Cell(flat, gc) missing")
	}
	if math.Abs(c.Mean-30) > 1e-12 {
		t.Errorf("Mean = %v, want 30", c.Mean)
	}
	if math.Abs(c.Sum-90) > 1e-12 {
		t.Errorf("Sum = %v, want 90", c.Sum)
	}
}

func TestGroupMeansEmptyCellWarning(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(nil)

	// sprinter never rides mount stages.
	ds := mustDataset(t, `rider_class stage points stage_class
gc 1 50 mount
gc 2 30 flat
sprinter 3 40 flat
`)
	gs := GroupMeans(ds)

	if _, ok := gs.Cell("mount", "sprinter"); ok {
		t.Error("Cell(mount, sprinter) present, want skipped")
	}

	found := false
	for _, w := range warned {
		var eg *errors.EmptyGroupWarning
		if errors.As(w, &eg) && eg.StageClass == "mount" && eg.RiderClass == "sprinter" {
			found = true
		}
	}
	if !found {
		t.Errorf("no EmptyGroupWarning for (mount, sprinter); warnings = %v", warned)
	}
}

func TestClassEntries(t *testing.T) {
	ds := mustDataset(t, gridTable)
	got := ClassEntries(ds)
	want := []ClassEntry{
		{RiderClass: "gc", Entries: 6},
		{RiderClass: "sprinter", Entries: 6},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClassEntries() = %v, want %v", got, want)
	}
}

func TestStagePointTotals(t *testing.T) {
	ds := mustDataset(t, gridTable)
	got := StagePointTotals(ds)
	want := []StageTotal{
		{StageClass: "flat", Points: 130},
		{StageClass: "hills", Points: 110},
		{StageClass: "mount", Points: 150},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StagePointTotals() = %v, want %v", got, want)
	}
}

func TestTopRiders(t *testing.T) {
	ds := mustDataset(t, gridTable)
	got := TopRiders(ds, 3)
	// Totals: A=110, B=180, C=50, D=90.
	want := []RiderTotal{
		{Rider: "B", Points: 180},
		{Rider: "A", Points: 110},
		{Rider: "D", Points: 90},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopRiders() = %v, want %v", got, want)
	}
}

func TestTopRidersTieBreak(t *testing.T) {
	ds := mustDataset(t, `all_riders rider_class stage points stage_class
ZED gc 1 10 flat
ABE gc 2 10 flat
`)
	got := TopRiders(ds, 2)
	if len(got) != 2 || got[0].Rider != "ABE" || got[1].Rider != "ZED" {
		t.Errorf("TopRiders() = %v, want ABE before ZED", got)
	}
}

func TestTopRidersWithoutRiderColumn(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(nil)

	ds := mustDataset(t, `rider_class stage points stage_class
gc 1 10 flat
`)
	if got := TopRiders(ds, 10); got != nil {
		t.Errorf("TopRiders() = %v, want nil", got)
	}

	found := false
	for _, w := range warned {
		var mc *errors.MissingColumnWarning
		if errors.As(w, &mc) {
			found = true
		}
	}
	if !found {
		t.Error("no MissingColumnWarning raised")
	}
}

func TestPointsByClass(t *testing.T) {
	ds := mustDataset(t, gridTable)
	got := PointsByClass(ds)
	if len(got) != 2 {
		t.Fatalf("len(PointsByClass()) = %d, want 2", len(got))
	}
	// gc mean 41.67 > sprinter mean 23.33, so gc comes first.
	if got[0].RiderClass != "gc" {
		t.Errorf("first class = %q, want gc", got[0].RiderClass)
	}
	if len(got[0].Points) != 6 {
		t.Errorf("gc points length = %d, want 6", len(got[0].Points))
	}
}

func TestBoxGrid(t *testing.T) {
	ds := mustDataset(t, gridTable)
	grid := BoxGrid(ds)
	if len(grid) != 3 {
		t.Fatalf("len(BoxGrid()) = %d, want 3", len(grid))
	}
	if grid[0].StageClass != "flat" {
		t.Errorf("grid[0].StageClass = %q, want flat", grid[0].StageClass)
	}
	for _, sb := range grid {
		if len(sb.Classes) != 2 {
			t.Errorf("stage %q has %d classes, want 2", sb.StageClass, len(sb.Classes))
		}
	}
}
