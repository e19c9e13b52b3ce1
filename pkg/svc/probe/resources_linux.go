//go:build linux

package probe

import "golang.org/x/sys/unix"

// ReadHostStats reads total memory from sysinfo(2) and the space available
// to unprivileged users on the filesystem holding diskPath.
func ReadHostStats(diskPath string) HostStats {
	var stats HostStats

	var info unix.Sysinfo_t

	if unix.Sysinfo(&info) == nil {
		stats.MemoryBytes = uint64(info.Totalram) * uint64(info.Unit)
		stats.MemoryKnown = true
	}

	var fs unix.Statfs_t

	if unix.Statfs(diskPath, &fs) == nil {
		stats.FreeDiskBytes = uint64(fs.Bavail) * uint64(fs.Frsize)
		stats.DiskKnown = true
	}

	return stats
}
