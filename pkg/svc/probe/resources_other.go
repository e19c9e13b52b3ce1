//go:build !linux && !darwin

package probe

// ReadHostStats has no implementation on this platform; every reading is unknown.
func ReadHostStats(string) HostStats {
	return HostStats{}
}
