package kind

import (
	"strings"
)

// NoClustersMessage is printed by kind when no clusters exist.
const NoClustersMessage = "No kind clusters found."

// ParseClusters returns the cluster names listed by `kind get clusters`, one
// per line. Blank lines and the no-clusters sentence are dropped; names are
// never matched by substring.
func ParseClusters(output string) []string {
	var clusters []string

	for line := range strings.SplitSeq(output, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || name == NoClustersMessage {
			continue
		}

		clusters = append(clusters, name)
	}

	return clusters
}

// ParseVersion returns the version token of `kind version` output, for
// example "v0.20.0" from "kind v0.20.0 go1.20.4 linux/amd64".
func ParseVersion(output string) string {
	fields := strings.Fields(output)
	if len(fields) < 2 || fields[0] != "kind" {
		return ""
	}

	return fields[1]
}
