package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults is the process-wide rendering configuration. It is fixed
// before the run starts and never modified afterwards; every consumer
// receives it by value.
type Defaults struct {
	// ImageWidth and ImageHeight size each standalone figure, px.
	ImageWidth  int
	ImageHeight int

	// PanelWidth and PanelHeight size each cell of a comparison
	// grid, px.
	PanelWidth  int
	PanelHeight int

	// DPI is the display pixel density hint written into the HTML
	// shell.
	DPI int

	// Quiet suppresses informational progress output while the
	// report is being generated.
	Quiet bool
}

// Standard returns the rendering defaults used by the published
// report.
func Standard() Defaults {
	return Defaults{
		ImageWidth:  640,
		ImageHeight: 480,
		PanelWidth:  320,
		PanelHeight: 260,
		DPI:         96,
		Quiet:       true,
	}
}

// FilesystemError reports a fatal filesystem failure while preparing
// or writing report artifacts.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("report filesystem failure at %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// EnsureDirs creates the output and images directories under root and
// returns their paths. It is idempotent: directories that already
// exist are left alone. Any other failure is fatal to the run.
func EnsureDirs(root string) (outDir, imgDir string, err error) {
	outDir = filepath.Join(root, "output")
	imgDir = filepath.Join(root, "images")
	for _, dir := range []string{outDir, imgDir} {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return "", "", &FilesystemError{dir, err}
		}
	}
	return outDir, imgDir, nil
}
