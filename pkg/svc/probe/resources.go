package probe

import (
	"fmt"
	"strconv"

	"github.com/devantler-tech/awxctl/pkg/apis/awx/v1alpha1"
	"k8s.io/apimachinery/pkg/util/sets"
)

const bytesPerGB = 1024 * 1024 * 1024

// Measure is a numeric resource reading that may be unknown on platforms
// without a supported mechanism.
type Measure struct {
	Value float64
	Known bool
}

// Known wraps a reading.
func Known(value float64) Measure {
	return Measure{Value: value, Known: true}
}

// Unknown is a reading the platform cannot provide.
func Unknown() Measure {
	return Measure{}
}

// Satisfies reports whether the reading meets minimum. Unknown satisfies any threshold.
func (m Measure) Satisfies(minimum float64) bool {
	return !m.Known || m.Value >= minimum
}

// String formats the reading with two decimals, or "unknown".
func (m Measure) String() string {
	if !m.Known {
		return "unknown"
	}

	return strconv.FormatFloat(m.Value, 'f', 2, 64)
}

// SystemProfile is the host's OS family and resource levels.
type SystemProfile struct {
	OSFamily      OSFamily
	TotalMemoryGB Measure
	CPUCores      Measure
	FreeDiskGB    Measure
}

// Dimension names a checked resource.
type Dimension string

const (
	DimensionMemory Dimension = "memory"
	DimensionCPU    Dimension = "cpu"
	DimensionDisk   Dimension = "disk"
)

// MeetsThresholds returns the dimensions that fall below the requirements.
// An empty set means the host qualifies.
func MeetsThresholds(profile SystemProfile, required v1alpha1.Requirements) sets.Set[Dimension] {
	failing := sets.New[Dimension]()

	if !profile.TotalMemoryGB.Satisfies(required.MemoryGB) {
		failing.Insert(DimensionMemory)
	}

	if !profile.CPUCores.Satisfies(float64(required.CPUCores)) {
		failing.Insert(DimensionCPU)
	}

	if !profile.FreeDiskGB.Satisfies(required.DiskGB) {
		failing.Insert(DimensionDisk)
	}

	return failing
}

// DescribeShortfall renders one line per failing dimension, in a stable order.
func DescribeShortfall(
	profile SystemProfile,
	required v1alpha1.Requirements,
	failing sets.Set[Dimension],
) []string {
	lines := make([]string, 0, failing.Len())

	for _, dimension := range sets.List(failing) {
		switch dimension {
		case DimensionMemory:
			lines = append(lines, fmt.Sprintf("memory: %sGB available, %.0fGB required",
				profile.TotalMemoryGB, required.MemoryGB))
		case DimensionCPU:
			lines = append(lines, fmt.Sprintf("cpu: %.0f cores available, %d required",
				profile.CPUCores.Value, required.CPUCores))
		case DimensionDisk:
			lines = append(lines, fmt.Sprintf("disk: %sGB free, %.0fGB required",
				profile.FreeDiskGB, required.DiskGB))
		}
	}

	return lines
}

// HostStats are raw memory and disk readings in bytes.
type HostStats struct {
	MemoryBytes   uint64
	MemoryKnown   bool
	FreeDiskBytes uint64
	DiskKnown     bool
}

func toGB(bytes uint64, known bool) Measure {
	if !known {
		return Unknown()
	}

	return Known(float64(bytes) / bytesPerGB)
}
