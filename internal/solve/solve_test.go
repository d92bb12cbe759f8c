package solve

import (
	"context"
	"errors"
	"github.com/Yeicor/solveview/internal/scene"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

const testResponse = `{"values":[
 {"ParamName":"RH_OUT:ring","InnerTree":{
  "{0;1}":[{"type":"Rhino.Geometry.Mesh","data":"{\"vertices\":[[0,0,0],[1,0,0],[1,1,0],[0,1,0]],\"faces\":[[0,1,2,3]]}"}],
  "{0;0}":[{"type":"System.String","data":"\"c29tZSBkcmFjbyBieXRlcw==\""},
           {"type":"Rhino.Geometry.Mesh","data":"{\"vertices\":[[0,0,0],[2,0,0],[0,0,3]],\"faces\":[[0,1,2]]}"}]
 }},
 {"ParamName":"RH_OUT:broken","InnerTree":{
  "{0}":[{"type":"Rhino.Geometry.Mesh","data":"{\"vertices\":[[0,0,0]],\"faces\":[[0,1,2]]}"},
         {"type":"System.Double","data":"1.5"}]
 }}
]}`

func TestInputsFilename(t *testing.T) {
	ins := Inputs{
		{ID: "input1", Type: Range, Min: 0, Max: 10, Step: 1, Value: 5},
		{ID: "input2", Type: Number, Value: 2.5},
		{ID: "flip", Type: Checkbox, Checked: true},
	}
	if got := ins.Filename(); got != "5_2.5_true.gh" {
		t.Fatalf("unexpected filename %q", got)
	}
	if got := (Inputs{}).Filename(); got != ".gh" {
		t.Fatalf("unexpected filename for no inputs %q", got)
	}
}

func TestInputNumberFormat(t *testing.T) {
	for _, c := range []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-2.5, "-2.5"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{-1.25e-9, "-1.25e-9"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e300, "1.5e+300"},
		{123.456e3, "123456"},
	} {
		if got := (Input{Type: Number, Value: c.value}).String(); got != c.want {
			t.Fatalf("formatting %v: got %q, want %q", c.value, got, c.want)
		}
	}
}

func TestInputNudge(t *testing.T) {
	in := Input{ID: "a", Type: Range, Min: 0, Max: 0.3, Step: 0.1}
	for i := 0; i < 3; i++ {
		if !in.Nudge(1) {
			t.Fatalf("step %d did not change the value", i)
		}
	}
	if in.String() != "0.3" {
		t.Fatalf("expected 0.3 without rounding noise, got %s", in.String())
	}
	if in.Nudge(1) {
		t.Fatalf("nudging past the maximum must not change the value")
	}
	cb := Input{ID: "b", Type: Checkbox}
	if !cb.Nudge(1) || cb.String() != "true" || cb.Nudge(2) {
		t.Fatalf("unexpected checkbox behavior: %v", cb)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
server: http://example.com:9000
inputs:
  - {id: input1, type: range, min: 1, max: 9, step: 1, value: 3}
  - {id: input2, type: checkbox}
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FitOffset != 3.6 || cfg.SolvePath != "ori/solve" || cfg.Server != "http://example.com:9000" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Inputs.Filename() != "3_false.gh" {
		t.Fatalf("unexpected inputs %+v", cfg.Inputs)
	}
	for _, bad := range []string{
		"fit_offset: 0",
		"inputs: [{id: a, type: slider}]",
		"inputs: [{id: a, type: number}, {id: a, type: number}]",
		"inputs: [{id: a, type: range, min: 2, max: 1}]",
	} {
		if _, err = ParseConfig([]byte(bad)); err == nil {
			t.Fatalf("expected an error for %q", bad)
		}
	}
}

func TestDecode(t *testing.T) {
	res, err := ParseResponse([]byte(testResponse))
	if err != nil {
		t.Fatal(err)
	}
	group, err := Decode(res)
	if err != nil {
		t.Fatal(err)
	}
	if len(group.Children) != 2 {
		t.Fatalf("expected 2 meshes (string, double and broken items skipped), got %d", len(group.Children))
	}
	// Branches are visited in sorted order: {0;0} (triangle) before {0;1} (quad)
	if n := len(group.Children[0].(*scene.Mesh).Triangles); n != 1 {
		t.Fatalf("expected the triangle first, got %d triangles", n)
	}
	if n := len(group.Children[1].(*scene.Mesh).Triangles); n != 2 {
		t.Fatalf("expected the quad to be split in 2 triangles, got %d", n)
	}
	bb, ok := scene.BoundingBox([]scene.Node{group})
	if !ok || bb.Max.X != 2 || bb.Max.Z != 3 {
		t.Fatalf("unexpected bounds %v", bb)
	}

	_, err = Decode(&Response{Values: []Output{{InnerTree: map[string][]Item{"{0}": {{Type: TypeString, Data: `"x"`}}}}}})
	if !errors.Is(err, ErrNoObjects) {
		t.Fatalf("expected ErrNoObjects, got %v", err)
	}
}

func TestClientFetch(t *testing.T) {
	var failures atomic.Int32
	failures.Store(2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ori/solve/5_2.5_true.gh":
			if failures.Add(-1) >= 0 {
				http.Error(w, "busy", http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(testResponse))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cl, err := NewClient(srv.URL, "/ori/solve/")
	if err != nil {
		t.Fatal(err)
	}
	if got := cl.URL("a.gh").String(); got != srv.URL+"/ori/solve/a.gh" {
		t.Fatalf("unexpected URL %s", got)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res, err := cl.Fetch(ctx, "5_2.5_true.gh")
	if err != nil {
		t.Fatalf("expected the fetch to succeed after retries: %v", err)
	}
	if len(res.Values) != 2 || res.Values[0].ParamName != "RH_OUT:ring" {
		t.Fatalf("unexpected response %+v", res)
	}
	if _, err = cl.Fetch(ctx, "missing.gh"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err = NewClient("ftp://example.com", "x"); err == nil {
		t.Fatalf("expected an error for an unsupported scheme")
	}
}

func TestConfigSaveLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Inputs = Inputs{{ID: "input1", Type: Number, Value: 0.5}}
	cfg.FitOnEveryLoad = true
	path := filepath.Join(t.TempDir(), "solveview.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Definition != cfg.Definition || loaded.Inputs.Filename() != "0.5.gh" || !loaded.FitOnEveryLoad {
		t.Fatalf("unexpected config after reload: %+v", loaded)
	}
	if _, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
