// Package lifecycle drives the AWX deployment through its states.
//
// The state is never stored. Every operation infers it from the cluster list,
// the AWX resource and the operator deployment, and only the transitions
// below are allowed:
//
//	Absent/Removed --deploy--> Running
//	Running --shutdown--> Stopped
//	Stopped --start--> Running
//	any --cleanup--> Removed
package lifecycle
