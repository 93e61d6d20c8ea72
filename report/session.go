package report

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// SessionInfo summarizes the toolchain and library versions that
// produced a report. It is informational output only; nothing
// consumes it downstream.
type SessionInfo struct {
	GoVersion string
	Platform  string
	Main      string
	Deps      []Dependency
}

// Dependency is one module the report binary was built against.
type Dependency struct {
	Path    string
	Version string
}

// Session collects the current session's environment summary.
func Session() SessionInfo {
	info := SessionInfo{
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Main = bi.Main.Path
		for _, d := range bi.Deps {
			info.Deps = append(info.Deps, Dependency{d.Path, d.Version})
		}
	}
	return info
}

// Fprint writes the session summary in a fixed plain-text layout.
func (s SessionInfo) Fprint(w io.Writer) {
	fmt.Fprintf(w, "go version: %s\n", s.GoVersion)
	fmt.Fprintf(w, "platform:   %s\n", s.Platform)
	if s.Main != "" {
		fmt.Fprintf(w, "module:     %s\n", s.Main)
	}
	for _, d := range s.Deps {
		fmt.Fprintf(w, "dep:        %s %s\n", d.Path, d.Version)
	}
}
