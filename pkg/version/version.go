// Package version reports how the notebook binary was built.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
)

// Version is set at link time:
//
//	go build -ldflags "-X notebook/pkg/version.Version=v1.0.0"
//
// Commit and BuildTime may be set the same way. When left empty they are
// taken from the VCS stamp the go command embeds in the binary.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	Modified  bool
	GoVersion string
	Platform  string
}

// Get collects Info from link-time values and the embedded build settings.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.applyVCS(bi.Settings)
	}
	return info
}

// applyVCS fills fields not set at link time from vcs.* build settings.
func (i *Info) applyVCS(settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "" {
				i.Commit = s.Value
			}
		case "vcs.time":
			if i.BuildTime == "" {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
}

// String renders i on one line, leaving out what is unknown:
//
//	notebook v1.0.0 (3f9c2ab41d07, modified) built 2025-01-02T15:04:05Z, go1.23.1 linux/amd64
func (i Info) String() string {
	var b strings.Builder
	b.WriteString("notebook ")
	b.WriteString(i.Version)
	if i.Commit != "" {
		b.WriteString(" (")
		b.WriteString(shortCommit(i.Commit))
		if i.Modified {
			b.WriteString(", modified")
		}
		b.WriteString(")")
	}
	if i.BuildTime != "" {
		b.WriteString(" built ")
		b.WriteString(i.BuildTime)
		b.WriteString(",")
	}
	b.WriteString(" ")
	b.WriteString(i.GoVersion)
	b.WriteString(" ")
	b.WriteString(i.Platform)
	return b.String()
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}
