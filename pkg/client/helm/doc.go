// Package helm drives the helm CLI for repository registration and release
// management, parsing its JSON output into typed values.
package helm
