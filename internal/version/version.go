// Where: cli/internal/version/version.go
// What: Version information retrieval.
// Why: Report the release tag or the VCS revision the binary was built from.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/poruru/stackctl/internal/meta"
)

// Version is set at link time: -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns "stackctl <version>". Without a link-time version the
// VCS revision is used, with "(dirty)" for modified trees, and "dev" when
// no build info is available.
func GetVersion() string {
	return fmt.Sprintf("%s %s", meta.AppName, resolve())
}

func resolve() string {
	if Version != "" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return "dev"
	}
	if modified {
		return revision + " (dirty)"
	}
	return revision
}
