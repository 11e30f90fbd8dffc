package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version when installed with go install, or
// devel-<VERSION>[+<revision>] for builds from a checkout.
func Version() string {
	return version(strings.TrimSpace(embeddedVersion), debug.ReadBuildInfo)
}

func version(base string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	info, ok := readBuildInfo()
	if !ok {
		return base
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var rev string
	modified := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) >= 7 {
				rev = s.Value[:7]
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	v := "devel-" + base
	if rev != "" {
		v += "+" + rev
		if modified {
			v += ".dirty"
		}
	}
	return v
}
