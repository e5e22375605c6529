package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version reports the supahooks version. Module-aware installs
// (`go install ...@vX.Y.Z`) report the module version; source builds fall
// back to the embedded VERSION file, suffixed with the VCS revision when
// the binary carries build info.
func Version() string {
	base := strings.TrimSpace(rawVersion)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return "devel-" + base + "+" + s.Value[:7]
		}
	}
	return "devel-" + base
}
