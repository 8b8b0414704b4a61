package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/simplecharts/simplecharts/pkg/cache"
	"github.com/simplecharts/simplecharts/pkg/chart"
	"github.com/simplecharts/simplecharts/pkg/config"
	"github.com/simplecharts/simplecharts/pkg/data"
	"github.com/simplecharts/simplecharts/pkg/errors"
	"github.com/simplecharts/simplecharts/pkg/fonts"
	"github.com/simplecharts/simplecharts/pkg/geom"
	"github.com/simplecharts/simplecharts/pkg/observability"
)

const sampleCSV = `x,requests,errors
0,10,1
1,14,0
2,9,3
3,21,2
`

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Render.Measurer = "approx"
	return &cfg
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "load.csv", sampleCSV)

	c, hash, err := Load(Options{Input: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(c.Series) != 2 || c.Series[0].Name != "requests" {
		t.Errorf("series = %v, want [requests errors]", c.Names())
	}
	if CountPoints(c) != 8 {
		t.Errorf("CountPoints() = %d, want 8", CountPoints(c))
	}

	_, again, _ := Load(Options{Input: path})
	if hash != again {
		t.Error("hash should be stable for the same file")
	}
	other := writeFile(t, "other.csv", sampleCSV+"4,30,1\n")
	if _, h, _ := Load(Options{Input: other}); h == hash {
		t.Error("hash should change with content")
	}
}

func TestLoadDemo(t *testing.T) {
	c, hash, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(c.Series) != 2 {
		t.Errorf("demo series = %d, want 2", len(c.Series))
	}
	if hash == "" {
		t.Error("demo hash is empty")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"missing", filepath.Join(dir, "missing.csv"), errors.ErrCodeFileNotFound},
		{"no finite points", writeFile(t, "empty.csv", "x,y\n1,\n2,\n"), errors.ErrCodeEmptyData},
		{"bad extension", writeFile(t, "data.txt", "1,2\n"), errors.ErrCodeInvalidFormat},
		{"bad value", writeFile(t, "bad.csv", "x,y\n1,abc\n"), errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(Options{Input: tt.input})
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestBuildChartLegend(t *testing.T) {
	single := &data.Collection{Series: []*data.Series{data.Sample("only", 0, 1, 5, func(x float64) float64 { return x })}}
	demo := data.Demo()

	tests := []struct {
		name    string
		c       *data.Collection
		legend  string
		wantPos geom.Position
		want    bool
	}{
		{"auto with many series", demo, LegendAuto, geom.Bottom, true},
		{"auto with one series", single, LegendAuto, 0, false},
		{"none", demo, LegendNone, 0, false},
		{"explicit right", single, "right", geom.Right, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := BuildChart(tt.c, fonts.Approx{}, Options{Legend: tt.legend, Config: testConfig()})
			if err != nil {
				t.Fatalf("BuildChart() error = %v", err)
			}
			defer ch.Plot().Close()

			got := ch.Legend()
			if (got != nil) != tt.want {
				t.Fatalf("legend present = %v, want %v", got != nil, tt.want)
			}
			if got != nil && got.Position() != tt.wantPos {
				t.Errorf("legend position = %v, want %v", got.Position(), tt.wantPos)
			}
		})
	}
}

func TestComputeLayout(t *testing.T) {
	opts := Options{Title: "Demo", Width: 640, Height: 400, Config: testConfig()}
	g, err := ComputeLayout(data.Demo(), opts)
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if g.Width != 640 || g.Height != 400 {
		t.Errorf("size = %vx%v, want 640x400", g.Width, g.Height)
	}
	if !g.Converged {
		t.Errorf("layout did not converge: %v", g.Warnings)
	}
	if g.Title == nil || g.Legend == nil {
		t.Error("title and legend should be laid out")
	}
	if len(g.Axes) != 2 {
		t.Fatalf("axes = %d, want 2", len(g.Axes))
	}

	again, err := ComputeLayout(data.Demo(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(g, again) {
		t.Error("ComputeLayout should be deterministic")
	}
}

func TestRenderFormats(t *testing.T) {
	opts := Options{Width: 320, Height: 240, Formats: []string{"svg", "json", "svg"}, Config: testConfig()}
	c := data.Demo()
	g, err := ComputeLayout(c, opts)
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := Render(context.Background(), g, c, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(artifacts))
	}
	if !bytes.Contains(artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact is not an SVG document")
	}

	var decoded chart.Geometry
	if err := json.Unmarshal(artifacts[FormatJSON], &decoded); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if decoded.PlotArea != g.PlotArea {
		t.Errorf("decoded PlotArea = %v, want %v", decoded.PlotArea, g.PlotArea)
	}
}

type recordingPipelineHooks struct {
	observability.NoopPipelineHooks
	loads, layouts, renders int
}

func (h *recordingPipelineHooks) OnLoadStart(context.Context, string) { h.loads++ }
func (h *recordingPipelineHooks) OnLayoutStart(context.Context, float64, float64) {
	h.layouts++
}
func (h *recordingPipelineHooks) OnRenderStart(context.Context, []string) { h.renders++ }

func TestRunnerCaching(t *testing.T) {
	hooks := &recordingPipelineHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	input := writeFile(t, "series.csv", sampleCSV)
	opts := Options{Input: input, Title: "Traffic", Formats: []string{"svg", "json"}, Config: testConfig()}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if first.Stats.SeriesCount != 2 || first.Stats.PointCount != 8 {
		t.Errorf("Stats = %+v", first.Stats)
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if !reflect.DeepEqual(first.Geometry, second.Geometry) {
		t.Error("cached geometry differs from computed geometry")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
	if hooks.loads != 2 || hooks.layouts != 1 || hooks.renders != 1 {
		t.Errorf("hooks loads/layouts/renders = %d/%d/%d, want 2/1/1", hooks.loads, hooks.layouts, hooks.renders)
	}

	retitled := opts
	retitled.Title = "Traffic (daily)"
	third, err := runner.Execute(ctx, retitled)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("a new title should miss the layout cache")
	}

	refresh := opts
	refresh.Refresh = true
	fourth, err := runner.Execute(ctx, refresh)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunnerSameGeometryDifferentData(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)

	opts := Options{Width: 300, Height: 200, Config: testConfig()}
	g, err := ComputeLayout(data.Demo(), opts)
	if err != nil {
		t.Fatal(err)
	}

	a := &data.Collection{Series: []*data.Series{{Name: "a", Points: []data.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}}}}
	b := &data.Collection{Series: []*data.Series{{Name: "b", Points: []data.Point{{X: 0, Y: 1}, {X: 1, Y: 0}}}}}

	outA, _, err := runner.RenderWithCacheInfo(ctx, g, a, "hash-a", opts)
	if err != nil {
		t.Fatal(err)
	}
	outB, hit, err := runner.RenderWithCacheInfo(ctx, g, b, "hash-b", opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("different data should not share artifacts")
	}
	if bytes.Equal(outA[FormatSVG], outB[FormatSVG]) {
		t.Error("different series rendered identically")
	}
}

func TestRunnerLoadError(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{Input: filepath.Join(t.TempDir(), "nope.csv")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRunnerDefaultsToNullCache(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	if _, ok := runner.Cache.(cache.NullCache); !ok {
		t.Errorf("Cache = %T, want cache.NullCache", runner.Cache)
	}
	if runner.Keyer == nil || runner.Logger == nil {
		t.Error("Keyer and Logger should be defaulted")
	}
}
