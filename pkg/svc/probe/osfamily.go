package probe

import (
	"bufio"
	"bytes"
	"slices"
	"strings"
)

// OSFamily groups operating systems that share install recipes.
type OSFamily string

const (
	FamilyRedHat  OSFamily = "redhat"
	FamilyDebian  OSFamily = "debian"
	FamilyMacOS   OSFamily = "macos"
	FamilyWindows OSFamily = "windows"
	FamilyUnknown OSFamily = "unknown"
)

// DefaultOSReleasePath is where linux distributions describe themselves.
const DefaultOSReleasePath = "/etc/os-release"

var (
	redhatIDs = []string{"rhel", "centos", "fedora", "rocky", "almalinux"}
	debianIDs = []string{"debian", "ubuntu"}
)

// FamilyForGOOS maps a GOOS and, on linux, the os-release content to a family.
func FamilyForGOOS(goos string, osRelease []byte) OSFamily {
	switch goos {
	case "darwin":
		return FamilyMacOS
	case "windows":
		return FamilyWindows
	case "linux":
		return FamilyFromOSRelease(osRelease)
	default:
		return FamilyUnknown
	}
}

// FamilyFromOSRelease classifies os-release content. ID wins over ID_LIKE, and
// every comparison is an exact token match.
func FamilyFromOSRelease(content []byte) OSFamily {
	fields := ParseOSRelease(content)

	candidates := []string{fields["ID"]}
	candidates = append(candidates, strings.Fields(fields["ID_LIKE"])...)

	for _, id := range candidates {
		id = strings.ToLower(id)

		switch {
		case slices.Contains(redhatIDs, id):
			return FamilyRedHat
		case slices.Contains(debianIDs, id):
			return FamilyDebian
		}
	}

	return FamilyUnknown
}

// ParseOSRelease parses KEY=VALUE lines, removing surrounding quotes.
func ParseOSRelease(content []byte) map[string]string {
	fields := map[string]string{}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		fields[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}

	return fields
}
