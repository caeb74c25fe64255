package api

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X github.com/MJE43/roulette-odds-go/internal/api.EngineVersion=v1.2.0"
var (
	EngineVersion = "dev"
	GitCommit     = "unknown"
	BuildTime     = "unknown"
)

// GetVersionInfo returns the current version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		EngineVersion: EngineVersion,
		GitCommit:     GitCommit,
		BuildTime:     BuildTime,
	}
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", v.EngineVersion, v.GitCommit, v.BuildTime)
}
