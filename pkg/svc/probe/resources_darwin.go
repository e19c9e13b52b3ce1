//go:build darwin

package probe

import "golang.org/x/sys/unix"

// ReadHostStats reads total memory from the hw.memsize sysctl and the space
// available on the filesystem holding diskPath.
func ReadHostStats(diskPath string) HostStats {
	var stats HostStats

	memory, err := unix.SysctlUint64("hw.memsize")
	if err == nil {
		stats.MemoryBytes = memory
		stats.MemoryKnown = true
	}

	var fs unix.Statfs_t

	if unix.Statfs(diskPath, &fs) == nil {
		stats.FreeDiskBytes = fs.Bavail * uint64(fs.Bsize)
		stats.DiskKnown = true
	}

	return stats
}
