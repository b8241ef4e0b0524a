package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// resolveVersionInfo prefers ldflags values and falls back to the module
// and VCS information embedded by go build.
func resolveVersionInfo() (string, string, string) {
	v, c, d := version, commit, date

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v, c, d
	}

	if v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if c == "unknown" && setting.Value != "" {
				c = setting.Value
				if len(c) > 12 {
					c = c[:12]
				}
			}
		case "vcs.time":
			if d == "unknown" && setting.Value != "" {
				d = setting.Value
			}
		}
	}
	return v, c, d
}

// versionString is printed after the program name by --version.
func versionString() string {
	v, c, d := resolveVersionInfo()
	return fmt.Sprintf("%s (%s, %s) %s/%s", v, c, d, runtime.GOOS, runtime.GOARCH)
}
