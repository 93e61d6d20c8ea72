package report

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/vizlab/palreport/census"
)

func TestEnsureDirsIdempotent(t *testing.T) {
	root := t.TempDir()
	out1, img1, err := EnsureDirs(root)
	if err != nil {
		t.Fatal(err)
	}
	// A second call over existing directories must not fail.
	out2, img2, err := EnsureDirs(root)
	if err != nil {
		t.Fatalf("EnsureDirs over existing directories failed: %v", err)
	}
	if out1 != out2 || img1 != img2 {
		t.Error("EnsureDirs should be stable across calls")
	}
	for _, dir := range []string{out1, img1} {
		fi, err := os.Stat(dir)
		if err != nil || !fi.IsDir() {
			t.Errorf("%s should be a directory", dir)
		}
	}
}

func TestEnsureDirsFailure(t *testing.T) {
	root := t.TempDir()
	// A plain file where the output directory should go.
	if err := os.WriteFile(filepath.Join(root, "output"), []byte("x"), 0o666); err != nil {
		t.Fatal(err)
	}
	_, _, err := EnsureDirs(root)
	var ferr *FilesystemError
	if !errors.As(err, &ferr) {
		t.Fatalf("want *FilesystemError; got %v", err)
	}
}

const testCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"GEOID": "06075010100", "B01003_001E": "3739"},
      "geometry": {"type": "Polygon", "coordinates": [[[-122.42, 37.78], [-122.41, 37.78], [-122.41, 37.79], [-122.42, 37.79], [-122.42, 37.78]]]}
    },
    {
      "type": "Feature",
      "properties": {"GEOID": "06075010200", "B01003_001E": "4212"},
      "geometry": {"type": "Polygon", "coordinates": [[[-122.44, 37.76], [-122.43, 37.76], [-122.43, 37.77], [-122.44, 37.77], [-122.44, 37.76]]]}
    }
  ]
}`

func testRequest() census.Request {
	return census.Request{
		Geography:  "tract",
		VariableID: "B01003_001E",
		Year:       2010,
		State:      "06",
		County:     "075",
		TargetCRS:  "EPSG:3857",
	}
}

func TestBuild(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		fmt.Fprint(w, testCollection)
	}))
	defer srv.Close()

	root := t.TempDir()
	cfg := Standard()
	if err := Build(root, cfg, &census.Client{BaseURL: srv.URL}, testRequest()); err != nil {
		t.Fatal(err)
	}

	// The tract dataset is shared between the forward and reversed
	// renderings, never refetched.
	if n := atomic.LoadInt32(&fetches); n != 1 {
		t.Errorf("want exactly 1 fetch; got %d", n)
	}

	for _, img := range []string{
		"points-viridis.svg", "points-magma.svg", "points-turbo.svg",
		"points-grid.svg", "bars-cividis.svg", "density.svg",
		"filled-inferno.svg", "tracts-forward.svg", "tracts-reversed.svg",
	} {
		if _, err := os.Stat(filepath.Join(root, "images", img)); err != nil {
			t.Errorf("missing figure %s: %v", img, err)
		}
	}

	doc, err := os.ReadFile(filepath.Join(root, "output", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	html := string(doc)
	for _, want := range []string{
		"Comparing sequential palettes",
		"Discrete scales",
		"Census tracts",
		"Reversing the direction",
		"points-grid.svg",
		"tracts-reversed.svg",
		"go version:",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document is missing %q", want)
		}
	}

	// The grid references its panels in the order they were given.
	grid, err := os.ReadFile(filepath.Join(root, "images", "points-grid.svg"))
	if err != nil {
		t.Fatal(err)
	}
	g := string(grid)
	i := strings.Index(g, "points-viridis.svg")
	j := strings.Index(g, "points-magma.svg")
	k := strings.Index(g, "points-turbo.svg")
	if !(i >= 0 && i < j && j < k) {
		t.Error("grid panel order not preserved")
	}
}

func TestBuildFetchFailureAborts(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()

	root := t.TempDir()
	err := Build(root, Standard(), &census.Client{BaseURL: u}, testRequest())
	var nerr *census.NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("want *census.NetworkError; got %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "output", "index.html")); err == nil {
		t.Error("failed run should not emit the document")
	}
}

func TestSession(t *testing.T) {
	s := Session()
	if s.GoVersion == "" || s.Platform == "" {
		t.Error("session info should carry toolchain and platform")
	}
	var buf strings.Builder
	s.Fprint(&buf)
	if !strings.Contains(buf.String(), "go version:") {
		t.Error("printed session summary should name the go version")
	}
}
