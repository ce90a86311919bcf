// Package version exposes the build version, overridden at release time with
// -ldflags "-X github.com/highercomve/billtracker/internal/version.Version=v1.2.3".
package version

var Version = "dev"
