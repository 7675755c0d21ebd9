package context

import (
	"fmt"
	"runtime/debug"
)

// VersionInfo describes the build of the running binary.
type VersionInfo struct {
	Semantic  string
	Commit    string
	Dirty     bool
	GoVersion string
}

// GetVersion returns the version information embedded in the binary by the Go
// toolchain. The semantic version is "(devel)" for local builds.
func GetVersion() *VersionInfo {
	v := &VersionInfo{Semantic: "(devel)"}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}

	if bi.Main.Version != "" {
		v.Semantic = bi.Main.Version
	}
	v.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			v.Commit = s.Value
		case "vcs.modified":
			v.Dirty = s.Value == "true"
		}
	}

	return v
}

// String returns the version in a human friendly format.
func (v *VersionInfo) String() string {
	if v == nil {
		return ""
	}

	s := v.Semantic
	if v.Commit != "" {
		commit := v.Commit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		s = fmt.Sprintf("%s (%s", s, commit)
		if v.Dirty {
			s += "-dirty"
		}
		s += ")"
	}

	return s
}
