// Package version reports build information stamped in with -ldflags:
//
//	go build -ldflags "-X github.com/teranos/contractq/version.Version=v0.3.0 \
//	    -X github.com/teranos/contractq/version.CommitHash=$(git rev-parse HEAD)"
package version

import (
	"fmt"
	"runtime"
)

var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	Version    = "dev"
)

// Info is served by /health and printed by `contractq version`
type Info struct {
	Version    string `json:"version" yaml:"version"`
	CommitHash string `json:"commit_hash" yaml:"commit_hash"`
	BuildTime  string `json:"build_time" yaml:"build_time"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	Platform   string `json:"platform" yaml:"platform"`
}

// Get returns the current build information
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders "contractq v0.3.0 (commit abc1234, built ...)"
func (i Info) String() string {
	return fmt.Sprintf("contractq %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
}

// Short returns the abbreviated commit hash
func (i Info) Short() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// LogFields returns the build info as zap key-value pairs
func (i Info) LogFields() []interface{} {
	return []interface{}{
		"version", i.Version,
		"commit", i.Short(),
		"go", i.GoVersion,
	}
}
