// Package version exposes build information of the einvoice binary.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/afea/einvoice/version.Version=1.0.0" ./cmd/einvoice
//
// Values left empty are filled from the VCS stamp embedded by the Go
// toolchain when available.
package version
