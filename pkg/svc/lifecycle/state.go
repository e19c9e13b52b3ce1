package lifecycle

// State is the inferred lifecycle state of the deployment.
type State string

const (
	// StateAbsent means there is no cluster or no AWX instance.
	StateAbsent State = "absent"
	// StateProvisioning means the operator exists but is not ready yet.
	StateProvisioning State = "provisioning"
	// StateRunning means the operator is ready.
	StateRunning State = "running"
	// StateStopped means the operator is scaled to zero.
	StateStopped State = "stopped"
	// StateRemoved is returned by cleanup.
	StateRemoved State = "removed"
)

// String returns the state name.
func (s State) String() string {
	return string(s)
}
