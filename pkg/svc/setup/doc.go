// Package setup runs the full provisioning pipeline: host checks, tool
// installation, cluster and AWX deployment, and credential retrieval.
package setup
