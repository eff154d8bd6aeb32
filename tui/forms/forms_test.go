package forms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/markerman/marker"
)

func TestValidateRenderDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"writable", dir, false},
		{"trailing dot", dir + "/.", false},
		{"empty", "   ", true},
		{"file", file, true},
		{"missing", filepath.Join(dir, "nope"), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateRenderDir(tc.in); (err != nil) != tc.wantErr {
				t.Fatalf("ValidateRenderDir(%q) = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
		})
	}
}

func TestMarkerFormResult(t *testing.T) {
	r := MarkerFormResult{Name: " Intro ", Color: marker.Teal, Note: "cold open", Duration: "00:00:01:12"}
	m, err := r.Marker(240, 24)
	if err != nil {
		t.Fatal(err)
	}
	want := marker.Marker{Frame: 240, Color: marker.Teal, Name: "Intro", Note: "cold open", Duration: 36}
	if m != want {
		t.Fatalf("Marker() = %+v, want %+v", m, want)
	}

	r.Duration = "soon"
	if _, err := r.Marker(0, 24); err == nil {
		t.Fatal("bad duration expected error")
	}
}

func TestStrategyTitle(t *testing.T) {
	if got := StrategyTitle(7); got != "Found 7 markers, how should they be used?" {
		t.Fatalf("StrategyTitle = %q", got)
	}
}

func TestFormsBuild(t *testing.T) {
	var colors []marker.Color
	if NewColorForm([]marker.Color{marker.Blue}, &colors) == nil {
		t.Fatal("nil colour form")
	}
	res := MarkerFormResult{}
	if NewMarkerForm(0, 24, &res) == nil || res.Color != marker.Blue {
		t.Fatalf("marker form default colour = %q", res.Color)
	}
	if NewMessageForm("hello") == nil {
		t.Fatal("nil message form")
	}
}
