// Package probe inspects the host: operating system family, memory, CPU and
// disk against the required thresholds, and the presence, version and daemon
// health of the external tools awxctl drives.
package probe
