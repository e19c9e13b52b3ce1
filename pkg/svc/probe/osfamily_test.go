package probe_test

import (
	"testing"

	"github.com/devantler-tech/awxctl/pkg/svc/probe"
	"github.com/stretchr/testify/assert"
)

const ubuntuOSRelease = `PRETTY_NAME="Ubuntu 22.04.4 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
ID=ubuntu
ID_LIKE=debian
`

const rockyOSRelease = `NAME="Rocky Linux"
VERSION="9.3 (Blue Onyx)"
ID="rocky"
ID_LIKE="rhel centos fedora"
`

func TestFamilyForGOOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		goos      string
		osRelease string
		want      probe.OSFamily
	}{
		{name: "ubuntu", goos: "linux", osRelease: ubuntuOSRelease, want: probe.FamilyDebian},
		{name: "rocky", goos: "linux", osRelease: rockyOSRelease, want: probe.FamilyRedHat},
		{
			name:      "derivative resolved through ID_LIKE",
			goos:      "linux",
			osRelease: "ID=linuxmint\nID_LIKE=\"ubuntu debian\"\n",
			want:      probe.FamilyDebian,
		},
		{
			name:      "substring is not a match",
			goos:      "linux",
			osRelease: "ID=notdebian\nID_LIKE=rhelish\n",
			want:      probe.FamilyUnknown,
		},
		{name: "alpine", goos: "linux", osRelease: "ID=alpine\n", want: probe.FamilyUnknown},
		{name: "macos", goos: "darwin", want: probe.FamilyMacOS},
		{name: "windows", goos: "windows", want: probe.FamilyWindows},
		{name: "freebsd", goos: "freebsd", want: probe.FamilyUnknown},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.want, probe.FamilyForGOOS(test.goos, []byte(test.osRelease)))
		})
	}
}

func TestParseOSRelease(t *testing.T) {
	t.Parallel()

	fields := probe.ParseOSRelease([]byte("# comment\n\nID='fedora'\nVERSION_ID=40\nbroken line\n"))

	assert.Equal(t, map[string]string{"ID": "fedora", "VERSION_ID": "40"}, fields)
}
