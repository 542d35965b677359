package scrollmarks

import (
	"math"
	"strings"
	"testing"
)

func TestBuildGradientSingleMark(t *testing.T) {
	grad := buildGradient([]ColorMark{{Start: 5, End: 15, Color: "red"}}, "#1a1a2e")
	if grad == nil {
		t.Fatal("expected a gradient")
	}
	want := "linear-gradient(to bottom, #1a1a2e 0.00%, #1a1a2e 5.00%, red 5.00%, red 15.00%, #1a1a2e 15.00%, #1a1a2e 100.00%)"
	if got := grad.CSS(); got != want {
		t.Errorf("gradient:\n got %s\nwant %s", got, want)
	}
}

func TestBuildGradientTwoMarksWithGap(t *testing.T) {
	grad := buildGradient([]ColorMark{
		{Start: 0, End: 40, Color: "red"},
		{Start: 60, End: 100, Color: "blue"},
	}, "#1a1a2e")
	want := "linear-gradient(to bottom, red 0.00%, red 40.00%, #1a1a2e 40.00%, #1a1a2e 60.00%, blue 60.00%, blue 100.00%)"
	if got := grad.CSS(); got != want {
		t.Errorf("gradient:\n got %s\nwant %s", got, want)
	}
}

func TestBuildGradientContiguousMarks(t *testing.T) {
	// Adjacent marks must not get a sliver of track color between them.
	grad := buildGradient([]ColorMark{
		{Start: 0, End: 50, Color: "red"},
		{Start: 50.005, End: 100, Color: "blue"},
	}, "#1a1a2e")
	if got := grad.CSS(); strings.Count(got, "#1a1a2e") != 0 {
		t.Errorf("no track segment expected within epsilon: %s", got)
	}
}

func TestBuildGradientOverlappingMarksKeptInOrder(t *testing.T) {
	// Overlaps are not merged; both segments are emitted and later stops
	// repaint shared boundaries.
	grad := buildGradient([]ColorMark{
		{Start: 10, End: 50, Color: "red"},
		{Start: 30, End: 60, Color: "blue"},
	}, "#1a1a2e")
	want := "linear-gradient(to bottom, #1a1a2e 0.00%, #1a1a2e 10.00%, red 10.00%, red 50.00%, blue 30.00%, blue 60.00%, #1a1a2e 60.00%, #1a1a2e 100.00%)"
	if got := grad.CSS(); got != want {
		t.Errorf("gradient:\n got %s\nwant %s", got, want)
	}
}

func TestBuildGradientEmpty(t *testing.T) {
	if grad := buildGradient(nil, "#1a1a2e"); grad != nil {
		t.Errorf("empty mark set should not build a gradient: %+v", grad)
	}
}

func TestBuildGradientCoversFullRange(t *testing.T) {
	marksets := [][]ColorMark{
		{{Start: 5, End: 15, Color: "a"}},
		{{Start: 0, End: 100, Color: "a"}},
		{{Start: 0, End: 40, Color: "a"}, {Start: 60, End: 100, Color: "b"}},
		{{Start: 20, End: 30, Color: "a"}, {Start: 30, End: 70, Color: "b"}, {Start: 90, End: 99, Color: "c"}},
	}
	for _, marks := range marksets {
		grad := buildGradient(marks, "track")
		stops := grad.Stops
		if stops[0].Offset != 0 {
			t.Errorf("first stop should sit at 0, got %v", stops[0].Offset)
		}
		if stops[len(stops)-1].Offset != 1 {
			t.Errorf("last stop should sit at 1, got %v", stops[len(stops)-1].Offset)
		}
		// Segment boundaries must be contiguous: each segment starts where
		// the previous one ended, within epsilon.
		for i := 2; i < len(stops); i += 2 {
			gap := math.Abs(stops[i].Offset - stops[i-1].Offset)
			if gap > epsilon/100 {
				t.Errorf("gap of %v between segments at stop %d", gap, i)
			}
		}
	}
}
