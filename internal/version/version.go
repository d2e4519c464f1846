package version

import (
	"runtime"

	"github.com/benvon/wifi-api/internal/models"
)

// Overridden at build time:
//
//	go build -ldflags "-X github.com/benvon/wifi-api/internal/version.Version=1.2.3"
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns the build information of the running binary
func Info() models.VersionInfo {
	return models.VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}
