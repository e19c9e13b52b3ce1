// Package installer makes external tools available. Install steps live in a
// static recipe table keyed by tool and OS family; the control logic probes
// first, so an installed tool costs no install commands.
package installer
