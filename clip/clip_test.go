package clip

import (
	"strconv"
	"testing"

	"github.com/user/markerman/marker"
)

type span struct {
	in, out int
	name    string
}

func spans(clips []Clip) []span {
	out := make([]span, 0, len(clips))
	for _, c := range clips {
		out = append(out, span{in: c.InPoint, out: c.OutPoint, name: c.Name})
	}
	return out
}

func assertSpans(t *testing.T, got []Clip, want []span) {
	t.Helper()
	g := spans(got)
	if len(g) != len(want) {
		t.Fatalf("got %d clips %v, want %d %v", len(g), g, len(want), want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("clip %d = %+v, want %+v", i, g[i], want[i])
		}
	}
}

func assertDenseIndices(t *testing.T, clips []Clip) {
	t.Helper()
	for i, c := range clips {
		n, err := strconv.Atoi(c.Index)
		if err != nil {
			t.Fatalf("clip %d index %q is not numeric", i, c.Index)
		}
		if n != i+1 {
			t.Fatalf("clip %d has index %d, want %d", i, n, i+1)
		}
	}
}

func TestBuild(t *testing.T) {
	src := marker.Marker{Frame: 10, Name: "SceneA - take two", Note: "good take", Color: marker.Blue}
	c := Build(86410, 86458, src, 3, 24)

	want := Clip{
		Index:    "03",
		InPoint:  86410,
		OutPoint: 86458,
		Filename: "03_scenea",
		Name:     "SceneA - take two",
		Note:     "good take",
		Color:    "Blue",
		Frames:   48,
		Duration: "00:00:02:00",
	}
	if c != want {
		t.Fatalf("Build = %+v, want %+v", c, want)
	}
}

func TestBuild_InvertedRange(t *testing.T) {
	c := Build(10, 5, marker.Marker{Name: "x"}, 1, 24)
	if c.Frames != -5 {
		t.Fatalf("Frames = %d, want -5", c.Frames)
	}
	if c.Duration != "00:00" {
		t.Fatalf("Duration = %q, want placeholder", c.Duration)
	}
}

func TestBuild_EmptySlug(t *testing.T) {
	c := Build(0, 10, marker.Marker{Name: "-only a note"}, 12, 24)
	if c.Filename != "12_" {
		t.Fatalf("Filename = %q, want %q", c.Filename, "12_")
	}
}

func TestFilename_DuplicateNamesStayDistinct(t *testing.T) {
	a := Filename(1, "Intro")
	b := Filename(2, "intro!")
	if a == b {
		t.Fatalf("Filename produced duplicate %q", a)
	}
	if a != "01_intro" || b != "02_intro" {
		t.Fatalf("Filename = %q, %q", a, b)
	}
	if got := Filename(100, "x"); got != "100_x" {
		t.Fatalf("Filename(100) = %q", got)
	}
}

func TestDualMarkerScan(t *testing.T) {
	markers := marker.Map{
		0:   {Name: "Intro"},
		100: {Name: "Marker 1"},
		150: {Name: "Outro"},
		220: {Name: "Marker 2"},
	}

	clips := DualMarkerScan{}.Interpret(markers, 0, 24)
	assertSpans(t, clips, []span{
		{in: 0, out: 100, name: "Intro"},
		{in: 150, out: 220, name: "Outro"},
	})
	assertDenseIndices(t, clips)
	if clips[1].Filename != "02_outro" {
		t.Fatalf("second filename = %q", clips[1].Filename)
	}
}

func TestDualMarkerScan_StartFrameOffset(t *testing.T) {
	markers := marker.Map{
		0:   {Name: "Intro"},
		100: {Name: "Marker 1"},
	}
	clips := DualMarkerScan{}.Interpret(markers, 86400, 24)
	assertSpans(t, clips, []span{{in: 86400, out: 86500, name: "Intro"}})
}

// A named marker that closes a clip is spent; it does not reopen as the next
// IN point, so back-to-back named markers drop every second range.
func TestDualMarkerScan_NamedCloserIsSpent(t *testing.T) {
	markers := marker.Map{
		0:   {Name: "A"},
		100: {Name: "B"},
		200: {Name: "Marker 1"},
		300: {Name: "C"},
		400: {Name: "D"},
		500: {Name: "E"},
	}

	clips := DualMarkerScan{}.Interpret(markers, 0, 24)
	assertSpans(t, clips, []span{
		{in: 0, out: 100, name: "A"},
		{in: 300, out: 400, name: "C"},
	})
	assertDenseIndices(t, clips)
}

func TestDualMarkerScan_DanglingInDropped(t *testing.T) {
	markers := marker.Map{
		0:   {Name: "Intro"},
		50:  {Name: "Marker 1"},
		900: {Name: "Trailing"},
	}
	clips := DualMarkerScan{}.Interpret(markers, 0, 24)
	assertSpans(t, clips, []span{{in: 0, out: 50, name: "Intro"}})
}

func TestDualMarkerScan_LeadingDefaultMarkersIgnored(t *testing.T) {
	markers := marker.Map{
		0:  {Name: "Marker 1"},
		10: {Name: "Marker 2"},
		20: {Name: "Intro"},
		30: {Name: "Marker 3"},
		40: {Name: "Marker 4"},
	}
	clips := DualMarkerScan{}.Interpret(markers, 0, 24)
	assertSpans(t, clips, []span{{in: 20, out: 30, name: "Intro"}})
}

func TestDualMarkerScan_Empty(t *testing.T) {
	if clips := (DualMarkerScan{}).Interpret(marker.Map{}, 0, 24); len(clips) != 0 {
		t.Fatalf("got %d clips from no markers", len(clips))
	}
}

func TestDurationScan(t *testing.T) {
	markers := marker.Map{
		10:  {Name: "Intro", Duration: 50},
		200: {Name: "Nothing", Duration: 0},
	}

	clips := DurationScan{}.Interpret(markers, 0, 24)
	assertSpans(t, clips, []span{{in: 10, out: 60, name: "Intro"}})
	if clips[0].Frames != 50 || clips[0].Index != "01" {
		t.Fatalf("clip = %+v", clips[0])
	}
}

func TestDurationScan_IndicesDenseAcrossGaps(t *testing.T) {
	markers := marker.Map{
		5:     {Name: "a", Duration: 1},
		6:     {Name: "skip", Duration: -3},
		1000:  {Name: "b", Duration: 24},
		5000:  {Name: "skip", Duration: 0},
		90000: {Name: "c", Duration: 48},
	}

	clips := DurationScan{}.Interpret(markers, 100, 24)
	assertSpans(t, clips, []span{
		{in: 105, out: 106, name: "a"},
		{in: 1100, out: 1124, name: "b"},
		{in: 90100, out: 90148, name: "c"},
	})
	assertDenseIndices(t, clips)
	if clips[2].Duration != "00:00:02:00" {
		t.Fatalf("third duration = %q", clips[2].Duration)
	}
}

func TestInterpret_FreshSlicePerRun(t *testing.T) {
	markers := marker.Map{0: {Name: "A", Duration: 10}, 20: {Name: "Marker 1"}}
	first := Duration.Interpret(markers, 0, 24)
	second := Duration.Interpret(markers, 0, 24)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("runs produced %d and %d clips, want 1 each", len(first), len(second))
	}
	if second[0].Index != "01" {
		t.Fatalf("second run index = %q, want 01", second[0].Index)
	}
}

func TestStrategy(t *testing.T) {
	if _, ok := DualMarker.Interpreter().(DualMarkerScan); !ok {
		t.Fatalf("DualMarker.Interpreter() = %T", DualMarker.Interpreter())
	}
	if _, ok := Duration.Interpreter().(DurationScan); !ok {
		t.Fatalf("Duration.Interpreter() = %T", Duration.Interpreter())
	}

	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{in: "dual", want: DualMarker},
		{in: "Duration", want: Duration},
		{in: "Mark Clips using Marker Duration", want: Duration},
		{in: "pair", want: DualMarker},
		{in: "random", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseStrategy(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseStrategy(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseStrategy(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}

	for _, s := range Strategies() {
		if s.Label() == "" || s.Description() == "" {
			t.Errorf("strategy %v missing label or description", s)
		}
	}
}
