// Package buildinfo exposes the version metadata stamped into release
// binaries. Development builds report "dev" with no commit or date.
package buildinfo

import "fmt"

// Stamped at build time via -ldflags, e.g.:
//
//	go build -ldflags "\
//	  -X github.com/lessonlab/vizboard/pkg/buildinfo.Version=v0.3.0 \
//	  -X github.com/lessonlab/vizboard/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/lessonlab/vizboard/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String renders the build info on one line, omitting fields a dev build
// does not have.
func String() string {
	s := Version
	if Commit != "" {
		s += fmt.Sprintf(" (%s)", Commit)
	}
	if Date != "" {
		s += " built " + Date
	}
	return s
}

// Template is the cobra --version output template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\n", String())
}
