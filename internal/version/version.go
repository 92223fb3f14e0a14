package version

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Build information for the minijson CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Info is the resolved build fingerprint.
type Info struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

// Collect reads the ldflags variables, falling back to the VCS data
// embedded by the Go toolchain when no commit was injected.
func Collect() Info {
	info := Info{
		Tool:      "minijson",
		Version:   strings.TrimSpace(Version),
		GitCommit: strings.TrimSpace(GitCommit),
		BuildDate: strings.TrimSpace(BuildDate),
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			}
		}
	}
	return info
}

// WritePretty prints a one-line banner plus optional details.
func WritePretty(w io.Writer, info Info, verbose, useColor bool) error {
	major, minor, patch := splitVersion(info.Version)
	if useColor {
		major = color.New(color.FgYellow, color.Bold).Sprint(major)
		minor = color.New(color.FgGreen, color.Bold).Sprint(minor)
		patch = color.New(color.FgBlue, color.Bold).Sprint(patch)
	}
	v := major
	if minor != "" {
		v += "." + minor
	}
	if patch != "" {
		v += "." + patch
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", info.Tool, v); err != nil {
		return err
	}
	if !verbose {
		return nil
	}
	_, err := fmt.Fprintf(w, "commit: %s\nbuilt:  %s\ngo:     %s\n",
		valueOrUnknown(info.GitCommit), valueOrUnknown(info.BuildDate), valueOrUnknown(info.GoVersion))
	return err
}

// WriteJSON prints info as an indented JSON object.
func WriteJSON(w io.Writer, info Info) error {
	return json.MarshalWrite(w, info, jsontext.WithIndent("  "), jsontext.Multiline(true))
}

// splitVersion splits "1.2.3-dev" into "1", "2" and "3-dev".
func splitVersion(v string) (major, minor, patch string) {
	parts := strings.SplitN(v, ".", 3)
	major = parts[0]
	if len(parts) > 1 {
		minor = parts[1]
	}
	if len(parts) > 2 {
		patch = parts[2]
	}
	return major, minor, patch
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
